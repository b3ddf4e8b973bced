package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/tyler-sommer/stick"
)

// defaultAnalyzeInstructions is the system-prompt fallback for the analyze
// flow; the client normally sends its own.
const defaultAnalyzeInstructions = "You are a helpful assistant."

// defaultChatInstructions is the secretary persona used when a chat request
// carries no system prompt. Kept byte-identical with the client's default.
const defaultChatInstructions = `優秀な秘書として、ユーザーのタスクを明確にする手伝いをすること。
明確な実行できる タスク名に言い換えて。先頭に的確な絵文字を追加して
画像の場合は、そこから何をしようとしているのか推定して、タスクにして。
会話的な返答はしない。
返答は機械的に、タスク名としてふさわしい文字列のみを出力すること。
`

// analyzeTaskTemplate renders the user turn of the analyze flow: the memo
// plus the target schema and recent rows as few-shot context.
const analyzeTaskTemplate = `以下のメモを分析し、データベースに登録するプロパティ値をJSONオブジェクトとして出力してください。

## メモ
{{ text }}

## データベーススキーマ
{{ schema }}

## 最近の記録例
{{ examples }}

## 出力ルール
- JSONオブジェクトのみを出力すること。説明文やコードブロックは不要。
- キーはスキーマのプロパティ名と完全に一致させること。
- select / multi_select は既存の選択肢から選ぶこと。
- 日付は ISO 8601 形式 (YYYY-MM-DD) で出力すること。`

var promptEnv = stick.New(nil)

// buildAnalyzeTask renders the analyze task text. A render failure degrades
// to plain concatenation so prompt building stays total.
func buildAnalyzeTask(text, schemaJSON, examplesJSON string) string {
	var out strings.Builder
	err := promptEnv.Execute(analyzeTaskTemplate, &out, map[string]stick.Value{
		"text":     text,
		"schema":   schemaJSON,
		"examples": examplesJSON,
	})
	if err != nil {
		log.Printf("WARN [Prompts] Analyze template render failed, using fallback: %v", err)
		return fmt.Sprintf("メモ:\n%s\n\nデータベーススキーマ:\n%s\n\n最近の記録例:\n%s\n\nスキーマに合わせたJSONオブジェクトのみを出力してください。",
			text, schemaJSON, examplesJSON)
	}
	return out.String()
}

var weekdayKanji = map[time.Weekday]string{
	time.Monday:    "月",
	time.Tuesday:   "火",
	time.Wednesday: "水",
	time.Thursday:  "木",
	time.Friday:    "金",
	time.Saturday:  "土",
	time.Sunday:    "日",
}

// timeContext renders the current time the way the prompts expect it, e.g.
// "2024-01-01 12:00 (2024年01月01日 12:00 JST) 月曜日". The weekday in
// Japanese lets the model resolve phrases like 今週 or 週末.
func timeContext(now time.Time) string {
	return fmt.Sprintf("%s (%s %s) %s曜日",
		now.Format("2006-01-02 15:04"),
		now.Format("2006年01月02日 15:04"),
		now.Format("MST"),
		weekdayKanji[now.Weekday()])
}
