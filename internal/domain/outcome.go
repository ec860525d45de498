package domain

// PublishOutcome summarizes a single pipeline run.
// On a publish failure it still reports what was achieved before the failure.
type PublishOutcome struct {
	Message string `json:"message"`

	Prefix string `json:"prefix"`
	Topic  string `json:"topic"`

	TotalEnumerated  int `json:"totalEnumerated"`
	TotalSigned      int `json:"totalSigned"`
	TotalPublished   int `json:"totalPublished"`
	BatchesPublished int `json:"batchesPublished"`
	Dropped          int `json:"dropped"`
}
