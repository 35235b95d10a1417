package views

// User-facing messages. Every failure of an operation collapses into
// its single message.
const (
	MsgChatFailed      = "エラーが発生しました"
	MsgLoadFailed      = "読み込みに失敗しました"
	MsgUploadSucceeded = "アップロード成功: %s"
	MsgUploadFailed    = "アップロードに失敗しました"
)
