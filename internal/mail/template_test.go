package mail

import (
	"strings"
	"testing"
	"time"

	"github.com/wizonweb/wizon-server/internal/model"
)

func TestRenderContactMessage(t *testing.T) {
	c := &model.Contact{
		Firstname:     "Ada",
		Lastname:      "Lovelace",
		Phone:         "+44 20 0000",
		Email:         "ada@example.com",
		Brandname:     "Engines <Ltd>",
		MetaAds:       model.MetaAdsYes,
		MonthlyBudget: "$1k",
		Description:   `<script>alert("x")</script>`,
		CreatedAt:     time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
	}

	body, err := RenderContactMessage(c)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Ada Lovelace", "ada@example.com", "Engines &lt;Ltd&gt;", "2025-06-01 09:30 UTC", "$1k"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if strings.Contains(body, "<script>") {
		t.Error("description was not escaped")
	}
}
