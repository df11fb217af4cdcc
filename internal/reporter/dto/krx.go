package dto

// KRX getJsonData.cmd bld identifiers used by the reporter.
const (
	KrxBldMarketSnapshot   = "dbms/MDC/STAT/standard/MDCSTAT01501"
	KrxBldIssueOHLCV       = "dbms/MDC/STAT/standard/MDCSTAT01701"
	KrxBldInvestorByDate   = "dbms/MDC/STAT/standard/MDCSTAT02303"
	KrxBldInvestorSnapshot = "dbms/MDC/STAT/standard/MDCSTAT02203"
)

// KrxSnapshotRow is one issue in the whole-market daily snapshot.
// Numeric fields arrive as comma-grouped strings.
type KrxSnapshotRow struct {
	Ticker    string `json:"ISU_SRT_CD"`
	Name      string `json:"ISU_ABBRV"`
	Market    string `json:"MKT_NM"`
	Close     string `json:"TDD_CLSPRC"`
	ChangePct string `json:"FLUC_RT"`
	Turnover  string `json:"ACC_TRDVAL"`
	MarketCap string `json:"MKTCAP"`
}

// KrxSnapshotResponse is the snapshot envelope. Depending on the bld
// the rows arrive under OutBlock_1 or output.
type KrxSnapshotResponse struct {
	OutBlock []KrxSnapshotRow `json:"OutBlock_1"`
	Output   []KrxSnapshotRow `json:"output"`
}

// Rows returns whichever block the endpoint populated.
func (r KrxSnapshotResponse) Rows() []KrxSnapshotRow {
	if len(r.OutBlock) > 0 {
		return r.OutBlock
	}
	return r.Output
}

// KrxOHLCVRow is one trading day of an individual issue.
type KrxOHLCVRow struct {
	Date   string `json:"TRD_DD"`
	Open   string `json:"TDD_OPNPRC"`
	High   string `json:"TDD_HGPRC"`
	Low    string `json:"TDD_LWPRC"`
	Close  string `json:"TDD_CLSPRC"`
	Volume string `json:"ACC_TRDVOL"`
}

// KrxOHLCVResponse is the per-issue daily price envelope.
type KrxOHLCVResponse struct {
	OutBlock []KrxOHLCVRow `json:"OutBlock_1"`
	Output   []KrxOHLCVRow `json:"output"`
}

// Rows returns whichever block the endpoint populated.
func (r KrxOHLCVResponse) Rows() []KrxOHLCVRow {
	if len(r.OutBlock) > 0 {
		return r.OutBlock
	}
	return r.Output
}

// KrxInvestorByDateRow is one trading day of net value by investor
// group for an individual issue.
type KrxInvestorByDateRow struct {
	Date               string `json:"TRD_DD"`
	InstitutionalValue string `json:"ORGN_NETBID_TRDVAL"`
	ForeignValue       string `json:"FORN_NETBID_TRDVAL"`
}

// KrxInvestorByDateResponse is the per-issue investor flow envelope.
type KrxInvestorByDateResponse struct {
	OutBlock []KrxInvestorByDateRow `json:"OutBlock_1"`
	Output   []KrxInvestorByDateRow `json:"output"`
}

// Rows returns whichever block the endpoint populated.
func (r KrxInvestorByDateResponse) Rows() []KrxInvestorByDateRow {
	if len(r.OutBlock) > 0 {
		return r.OutBlock
	}
	return r.Output
}

// KrxInvestorSnapshotRow is a one-day aggregate for an issue, one row
// per investor group.
type KrxInvestorSnapshotRow struct {
	InvestorName string `json:"INVST_TP_NM"`
	NetValue     string `json:"NETBID_TRDVAL"`
}

// KrxInvestorSnapshotResponse is the envelope for the single-day
// investor aggregate.
type KrxInvestorSnapshotResponse struct {
	OutBlock []KrxInvestorSnapshotRow `json:"OutBlock_1"`
	Output   []KrxInvestorSnapshotRow `json:"output"`
}

// Rows returns whichever block the endpoint populated.
func (r KrxInvestorSnapshotResponse) Rows() []KrxInvestorSnapshotRow {
	if len(r.OutBlock) > 0 {
		return r.OutBlock
	}
	return r.Output
}
