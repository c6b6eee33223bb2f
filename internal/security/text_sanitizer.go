// Package security はアプリケーションのセキュリティ機能を提供する。
//
// TextSanitizer はユーザーが入力した自由記述（称賛メッセージ、タグ名）から
// HTMLマークアップを取り除き、プレーンテキストとして保存できる形に整える。
// bluemondayのStrictPolicyで全てのタグと属性を除去する。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizerService はプレーンテキスト化のインターフェースを定義する。
type TextSanitizerService interface {
	// Sanitize は入力から全てのHTMLタグを除去し、前後の空白を取り除いた文字列を返す。
	// script, styleタグは中身ごと除去される。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// TextSanitizer はTextSanitizerServiceの実装。
// bluemondayのポリシーはスレッドセーフなので複数goroutineから共有できる。
type TextSanitizer struct {
	policy *bluemonday.Policy
}

// NewTextSanitizer はTextSanitizerの新しいインスタンスを生成する。
func NewTextSanitizer() *TextSanitizer {
	return &TextSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// maxSanitizePasses はSanitizeがポリシーを適用する最大回数。
const maxSanitizePasses = 8

// Sanitize は入力をプレーンテキストに変換する。
// StrictPolicyは "&" などをエスケープして返すため、保存用にアンエスケープする。
// アンエスケープで現れたマークアップ（入力中の "&lt;script&gt;" 等）も除去するため、
// 出力が変化しなくなるまでポリシーを繰り返し適用する。
// JSON応答時のエスケープはencoding/jsonに任せる。
func (s *TextSanitizer) Sanitize(raw string) string {
	if raw == "" {
		return ""
	}

	current := raw
	for i := 0; i < maxSanitizePasses; i++ {
		next := s.sanitizeOnce(current)
		if next == current {
			return next
		}
		current = next
	}

	// 収束しない入力はエスケープ済みの形で返し、マークアップを残さない
	return strings.TrimSpace(s.policy.Sanitize(current))
}

// sanitizeOnce はポリシーを1回適用してアンエスケープする。
func (s *TextSanitizer) sanitizeOnce(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(text)))
}

// Compile-time interface check
var _ TextSanitizerService = (*TextSanitizer)(nil)
