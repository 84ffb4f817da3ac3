package lead

// UpdateStatusRequest moves a lead to another pipeline stage
type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required"`
}

// StatsResponse represents lead pipeline statistics
type StatsResponse struct {
	Total    int            `json:"total"`
	ByStatus map[Status]int `json:"by_status"`
}
