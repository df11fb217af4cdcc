package service

import (
	"testing"

	"go-market-reporter/internal/reporter/dto"
	"go-market-reporter/pkg/common"

	"github.com/stretchr/testify/assert"
)

func TestReportStore(t *testing.T) {
	store := NewReportStore()

	_, ok := store.Latest(common.ReportTypeGapRisk)
	assert.False(t, ok)
	assert.Empty(t, store.Types())

	store.Put(dto.Report{Type: common.ReportTypeGapRisk, TradeDate: "20250613", HTML: "<html>v1</html>"})
	store.Put(dto.Report{Type: common.ReportTypeSupply, TradeDate: "20250613", HTML: "<html>s</html>"})
	store.Put(dto.Report{Type: common.ReportTypeGapRisk, TradeDate: "20250616", HTML: "<html>v2</html>"})

	got, ok := store.Latest(common.ReportTypeGapRisk)
	assert.True(t, ok)
	assert.Equal(t, "20250616", got.TradeDate)
	assert.Equal(t, "<html>v2</html>", got.HTML)

	assert.Equal(t, []string{common.ReportTypeGapRisk, common.ReportTypeSupply}, store.Types())
}
