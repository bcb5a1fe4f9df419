package dto

type KnowledgeEntryDTO struct {
	Question string   `json:"question" validate:"required"`
	Answer   string   `json:"answer" validate:"required"`
	Tags     []string `json:"tags"`
}

type BulkLoadRequest struct {
	Entries []KnowledgeEntryDTO `json:"entries" validate:"required,min=1,dive"`
}

type BulkLoadResponse struct {
	Accepted int `json:"accepted"`
}
