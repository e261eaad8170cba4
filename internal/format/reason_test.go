package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"office-pricing/internal/model"
)

func TestTemplateReasonerProfitable(t *testing.T) {
	got := TemplateReasoner{}.Reasoning(sampleResult())

	assert.Contains(t, got, "covers the actual breakeven")
	assert.Contains(t, got, "configured 50.0% breakeven occupancy")
	assert.Contains(t, got, "27,000,000")
	assert.True(t, strings.HasSuffix(got, "."))
	assert.NotContains(t, got, "losing money")
	assert.NotContains(t, got, "clamped")
}

func TestTemplateReasonerLosingSmartClamped(t *testing.T) {
	res := sampleResult()
	res.IsLosingMoney = true
	res.TargetMode = model.TargetModeSmart
	res.Clamped = true
	res.IsOverride = true

	got := TemplateReasoner{}.Reasoning(res)
	assert.Contains(t, got, "losing money")
	assert.Contains(t, got, "smart target")
	assert.Contains(t, got, "clamped")
	assert.Contains(t, got, "analyst override")
}
