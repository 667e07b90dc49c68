// Package rank 定义警衔等级序列及晋升规则
package rank

import (
	"errors"
	"sort"
)

var (
	// ErrUnknownRank 警衔不在等级序列中
	ErrUnknownRank = errors.New("rank not in hierarchy")
	// ErrTopRank 已是最高警衔
	ErrTopRank = errors.New("rank is already the highest")
)

// hierarchy 由低到高，下标即资历
var hierarchy = []string{
	"Cadete",
	"Patrol Officer",
	"Police Officer",
	"Senior Officer",
	"Deputy",
	"Senior Deputy",
	"Undersheriff / Deputy Chief",
	"Sheriff / Chief of Police",
	"Forest Ranger",
	"Tracker Ranger",
	"Senior Ranger",
	"Captain Ranger",
	"Commissioner",
	"Deputy Marshal",
	"Marshal",
}

var positions = func() map[string]int {
	m := make(map[string]int, len(hierarchy))
	for i, r := range hierarchy {
		m[r] = i
	}
	return m
}()

// All 返回完整等级序列副本
func All() []string {
	out := make([]string, len(hierarchy))
	copy(out, hierarchy)
	return out
}

// IndexOf 返回警衔位置，未找到时 ok 为 false
func IndexOf(r string) (int, bool) {
	i, ok := positions[r]
	return i, ok
}

// Valid 判断警衔是否合法
func Valid(r string) bool {
	_, ok := positions[r]
	return ok
}

// Next 返回上一级警衔，不做回绕
func Next(r string) (string, error) {
	i, ok := positions[r]
	if !ok {
		return "", ErrUnknownRank
	}
	if i == len(hierarchy)-1 {
		return "", ErrTopRank
	}
	return hierarchy[i+1], nil
}

// Compare 比较两个警衔资历；未知警衔排在已知警衔之后，彼此按字典序
func Compare(a, b string) int {
	ia, okA := positions[a]
	ib, okB := positions[b]
	switch {
	case okA && okB:
		return ia - ib
	case okA:
		return -1
	case okB:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// SortRanks 按资历从低到高排序
func SortRanks(ranks []string) {
	sort.SliceStable(ranks, func(i, j int) bool {
		return Compare(ranks[i], ranks[j]) < 0
	})
}
