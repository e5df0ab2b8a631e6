package database

import "time"

// Divination is one stored history record: the question asked, the three
// numbers cast, and the derived hexagram and four-pillar strings.
type Divination struct {
	ID        int64     `json:"id"`
	Question  string    `json:"question"`
	Numbers   []int     `json:"numbers"`  // the three cast numbers, stored as JSON
	Hexagram  string    `json:"hexagram"` // e.g. "大安 速喜 空亡"
	Bazi      string    `json:"bazi"`     // e.g. "乙巳年 甲申月 庚午日 辛巳时"
	CreatedAt time.Time `json:"created_at"`
}

// DivinationPage is a page of history records plus paging info, the
// response shape of the list endpoint.
type DivinationPage struct {
	Divinations []Divination `json:"divinations"`
	Total       int          `json:"total"`
	Limit       int          `json:"limit"`
	Offset      int          `json:"offset"`
}
