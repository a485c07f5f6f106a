package model

type ToggleFollowRequest struct {
	PostID string `uri:"id"`
}

type ToggleFollowResponse struct {
	IsFollowing bool `json:"isFollowing"`
}

type GetFollowRequest struct {
	PostID string `uri:"id"`
}

type GetFollowResponse struct {
	IsFollowing bool `json:"isFollowing"`
}
