package domain

type NoticeCategory string

const (
	NoticeSuccess NoticeCategory = "success"
	NoticeDanger  NoticeCategory = "danger"
	NoticeWarning NoticeCategory = "warning"
	NoticeInfo    NoticeCategory = "info"
)

// Notice is a one-shot message shown on the next rendered page.
type Notice struct {
	Category NoticeCategory `json:"c"`
	Message  string         `json:"m"`
}
