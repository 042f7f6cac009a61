package domain

// Channel identifies a notification delivery path.
type Channel string

const (
	ChannelPush  Channel = "push"
	ChannelEmail Channel = "email"
)

// Notification is the per-channel payload: a title (email subject), a
// message body, and an optional local attachment path.
type Notification struct {
	Title          string
	Message        string
	AttachmentPath string
}

// Outcome records one channel's delivery result. Outcomes are collected
// into the run summary; a failed delivery never fails the run.
type Outcome struct {
	Channel   Channel
	Delivered bool
	Detail    string
}
