// internal/app/features/polls/types.go
package polls

import "github.com/dalemusser/pollhub/internal/app/system/pollview"

type createPollRequest struct {
	Title   string             `json:"title"`
	Options []createPollOption `json:"options"`
}

type createPollOption struct {
	Text string `json:"text"`
}

type voteRequest struct {
	OptionID string `json:"optionId"`
}

type pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

type listPollsResponse struct {
	Polls      []pollview.Snapshot `json:"polls"`
	Pagination pagination          `json:"pagination"`
}
