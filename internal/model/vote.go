package model

type VotePostRequest struct {
	PostID   string `uri:"id" json:"-"`
	VoteType string `json:"voteType"`
}

type VotePostResponse struct {
	Votes    int     `json:"votes"`
	UserVote *string `json:"userVote"`
}

type GetPostVoteRequest struct {
	PostID string `uri:"id"`
}

type GetPostVoteResponse struct {
	UserVote *string `json:"userVote"`
}

type VoteCommentRequest struct {
	CommentID string `uri:"id" json:"-"`
	VoteType  string `json:"voteType"`
}

type VoteCommentResponse struct {
	Votes    int     `json:"votes"`
	UserVote *string `json:"userVote"`
}

type GetCommentVoteRequest struct {
	CommentID string `uri:"id"`
}

type GetCommentVoteResponse struct {
	UserVote *string `json:"userVote"`
}
