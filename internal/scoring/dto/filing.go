package dto

// FilingMessage is one Form 4 filing published to the insider filings stream.
// Every line carries its own transaction code; lines other than P and S are skipped.
type FilingMessage struct {
	AccessionNumber string               `json:"accession_number"`
	Transactions    []TransactionRequest `json:"transactions"`
}

// IngestReport summarizes one ingested filing.
type IngestReport struct {
	Lines    int `json:"lines"`
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
	Rejected int `json:"rejected"`
}
