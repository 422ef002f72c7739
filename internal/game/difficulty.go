package game

import "fmt"

type Difficulty string

const (
	Easy      Difficulty = "easy"
	Medium    Difficulty = "medium"
	Hard      Difficulty = "hard"
	UltraHard Difficulty = "ultrahard"
)

// Distance a note falls per tick
var SpeedMap = map[Difficulty]float64{
	Easy:      2,
	Medium:    4,
	Hard:      6,
	UltraHard: 12,
}

var Difficulties = []Difficulty{Easy, Medium, Hard, UltraHard}

func (d Difficulty) Speed() float64 {
	return SpeedMap[d]
}

func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if _, ok := SpeedMap[d]; !ok {
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
	return d, nil
}
