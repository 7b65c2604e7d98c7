package utils

import (
	"math"
	"time"
)

type RankConfig struct {
	Gravity        float64 // 时间重力
	WeightAnswer   float64
	WeightAccepted float64
	WeightUpvote   float64
	WeightDownvote float64
	WeightView     float64
	ScaleFactor    float64 // 放大系数
}

var DefaultConfig = RankConfig{
	Gravity:        1.5,
	WeightAnswer:   2.0,
	WeightAccepted: 3.0,
	WeightUpvote:   1.0,
	WeightDownvote: 1.5,
	WeightView:     0.01,
	ScaleFactor:    100.0, // 让分数落在 0-100 区间，像"温度"
}

// CalculateHotScore ranks a question by weighted activity decayed by age.
func CalculateHotScore(t time.Time, up, down, answers, views int, accepted bool) float64 {
	hours := time.Since(t).Hours()
	if hours < 0 {
		hours = 0
	}

	// 1. 计算加权互动值
	weightedSum := (float64(up) * DefaultConfig.WeightUpvote) +
		(float64(answers) * DefaultConfig.WeightAnswer) +
		(float64(views) * DefaultConfig.WeightView) -
		(float64(down) * DefaultConfig.WeightDownvote)
	if accepted {
		weightedSum += DefaultConfig.WeightAccepted
	}

	// 2. 基础修正
	if weightedSum < 0 {
		weightedSum = 0 // 防止负数无法取对数
	}

	// 3. 对数平滑: sum=0 时结果为 0
	logScore := math.Log10(weightedSum + 1)

	// 4. 时间衰减 (分母)
	decay := math.Pow(hours+2, DefaultConfig.Gravity)

	return logScore * DefaultConfig.ScaleFactor / decay
}
