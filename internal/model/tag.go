package model

import "time"

// Tag は称賛に付与するタグ（価値観）を表す。
type Tag struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NameCustom は表示用のハッシュタグ形式の名前を返す。
func (t *Tag) NameCustom() string {
	return "#" + t.Name
}
