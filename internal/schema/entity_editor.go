// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// EditorEntity declares the "editor" search core.
func EditorEntity() Entity {
	return Entity{
		Name:  "editor",
		Table: "editor",
		Boost: DefaultBoost,
		Fields: []Field{
			{Name: "name", Path: "name"},
		},
	}
}
