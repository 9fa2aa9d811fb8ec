// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// TagEntity declares the "tag" search core.
func TagEntity() Entity {
	return Entity{
		Name:  "tag",
		Table: "tag",
		Boost: DefaultBoost,
		Fields: []Field{
			{Name: "name", Path: "name"},
		},
	}
}
