package model

import "time"

// Compliment はユーザー間で送られる称賛を表す。
type Compliment struct {
	ID           string
	UserSender   string
	UserReceiver string
	TagID        string
	Message      string
	CreatedAt    time.Time
}

// ComplimentWithRelations は称賛にタグと送受信者の情報を結合した構造体。
// 送信・受信一覧のレスポンス生成で使用する。
type ComplimentWithRelations struct {
	Compliment
	Tag      Tag
	Sender   UserSummary
	Receiver UserSummary
}

// UserSummary は一覧表示用のユーザー概要。
type UserSummary struct {
	ID    string
	Name  string
	Email string
}
