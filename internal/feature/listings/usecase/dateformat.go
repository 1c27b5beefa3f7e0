package usecase

import (
	"fmt"
	"time"
)

// relativeDate は掲載日をカード表示用の相対表記に変換します。
// 差分は暦日で数え、31日以上はまとめて「over a month ago」になります。
func relativeDate(created, now time.Time) string {
	days := int(startOfDay(now).Sub(startOfDay(created)).Hours() / 24)
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "yesterday"
	case days > 1 && days <= 30:
		return fmt.Sprintf("%dd ago", days)
	case days > 30:
		return "over a month ago"
	}
	return ""
}

// startOfDay はタイムゾーン差の影響を避けるためUTCの日付境界に切り詰めます。
func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
