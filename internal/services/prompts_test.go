package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeContextFormat(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, jst) // a Monday

	assert.Equal(t, "2024-01-01 12:00 (2024年01月01日 12:00 JST) 月曜日", timeContext(now))
}

func TestTimeContextWeekdays(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	want := map[int]string{1: "月", 2: "火", 3: "水", 4: "木", 5: "金", 6: "土", 7: "日"}

	for day, kanji := range want {
		now := time.Date(2024, 1, day, 9, 30, 0, 0, jst)
		assert.Contains(t, timeContext(now), kanji+"曜日")
	}
}

func TestBuildAnalyzeTaskRendersSections(t *testing.T) {
	task := buildAnalyzeTask("明日までに資料をまとめる", `{"タスク名":{"type":"title"}}`, `[{"タスク名":"牛乳を買う"}]`)

	assert.Contains(t, task, "## メモ")
	assert.Contains(t, task, "明日までに資料をまとめる")
	assert.Contains(t, task, "## データベーススキーマ")
	assert.Contains(t, task, `{"タスク名":{"type":"title"}}`)
	assert.Contains(t, task, "## 最近の記録例")
	assert.Contains(t, task, `[{"タスク名":"牛乳を買う"}]`)
	assert.Contains(t, task, "## 出力ルール")
	assert.Contains(t, task, "ISO 8601")
}
