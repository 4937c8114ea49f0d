// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

// Package isodate parses the upstream's UTC timestamps
// (YYYY-MM-DDTHH:MM:SS[.fff]Z) and measures their age in days using the
// proleptic Gregorian civil-day algorithm.
package isodate

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// MaxAgeDays bounds DaysSince.
const MaxAgeDays = 60.0

const secondsPerDay = 86400

// ErrInvalid is returned for anything that is not a Y-M-DTH:M:S timestamp.
var ErrInvalid = errors.New("invalid ISO-8601 timestamp")

// ParseEpoch returns the Unix time in whole seconds. Fractional seconds are
// ignored and the trailing Z is optional.
func ParseEpoch(s string) (int64, error) {
	s = strings.TrimRight(strings.TrimSpace(s), "Z")
	datePart, timePart, ok := strings.Cut(s, "T")
	if !ok {
		return 0, ErrInvalid
	}

	date, err := splitInts(datePart, "-")
	if err != nil {
		return 0, err
	}
	if whole, _, _ := strings.Cut(timePart, "."); whole != "" {
		timePart = whole
	}
	clock, err := splitInts(timePart, ":")
	if err != nil {
		return 0, err
	}

	days := DaysFromCivil(date[0], date[1], date[2])
	return days*secondsPerDay + clock[0]*3600 + clock[1]*60 + clock[2], nil
}

func splitInts(s, sep string) ([3]int64, error) {
	var out [3]int64
	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return out, ErrInvalid
	}
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return out, ErrInvalid
		}
		out[i] = int64(v)
	}
	return out, nil
}

// DaysFromCivil returns the number of days from 1970-01-01 to y-m-d.
// Years are split into 400-year eras of 146097 days, with March as the
// first month so the leap day falls at the end of the year.
func DaysFromCivil(y, m, d int64) int64 {
	if m <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := m + 9
	if m > 2 {
		mp = m - 3
	}
	doy := (153*mp+2)/5 + d - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// DaysSince returns the fractional days between ts and now, clamped to
// [0, MaxAgeDays]. Unparseable timestamps count as brand new.
func DaysSince(ts string, now time.Time) float64 {
	epoch, err := ParseEpoch(ts)
	if err != nil {
		return 0
	}
	nowSecs := float64(now.Unix()) + float64(now.Nanosecond())/float64(time.Second)
	diff := nowSecs - float64(epoch)
	if diff < 0 {
		diff = 0
	}
	days := diff / secondsPerDay
	if days > MaxAgeDays {
		return MaxAgeDays
	}
	return days
}
