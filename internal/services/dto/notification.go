package dto

type NotificationListQuery struct {
	ListQuery
	UnreadOnly bool   `form:"unread_only"`
	Type       string `form:"type"`
}

type NotificationListResponse struct {
	*PaginatedResponse
	UnreadCount int64 `json:"unread_count"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
