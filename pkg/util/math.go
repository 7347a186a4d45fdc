package util

import "math"

func Ceil(a, b int64) int64 {
	if b == 0 {
		panic("division by zero")
	}
	return int64(math.Ceil(float64(a) / float64(b)))
}

// Round1 rounds a float to one decimal place
// Round1 将浮点数四舍五入保留一位小数
func Round1(f float64) float64 {
	return math.Round(f*10) / 10
}
