// Copyright (c) 2022-present Redmig Authors. All Rights Reserved.
// See License.txt for license information.

package model

// Tables holds the directory lookups fetched from the source tracker.
// Journal entries encode statuses, trackers, projects and users as numeric
// codes; rendering a coded value without resolving it through these tables
// is a defect, so the tables travel explicitly with every component that
// needs them instead of living in package state.
type Tables struct {
	Statuses map[int64]string
	Trackers map[int64]string
	Projects map[int64]string
	Users    map[int64]string
}

func NewTables() *Tables {
	return &Tables{
		Statuses: map[int64]string{},
		Trackers: map[int64]string{},
		Projects: map[int64]string{},
		Users:    map[int64]string{},
	}
}
