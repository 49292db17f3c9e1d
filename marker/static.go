package marker

import (
	"fieldpath/internal/analyze"
)

// FindStorageNameInfo answers FindStorageName from statically analysed type
// information, so no live value or reflect.Type is needed.
func FindStorageNameInfo(info *analyze.TypeInfo, label string) (string, bool) {
	return defaultIndex.FindStorageNameInfo(info, label)
}

// FindStorageNameInfo is FindStorageName over an analysed type.
func (x *Index) FindStorageNameInfo(info *analyze.TypeInfo, label string) (string, bool) {
	l, ok := first(x.LabelsInfo(info), label)

	return l.Storage, ok
}

// LabelsInfo lists the marked fields of an analysed struct in lookup order.
func (x *Index) LabelsInfo(info *analyze.TypeInfo) []Label {
	var out []Label

	current := []level[*analyze.TypeInfo]{{typ: info.Struct()}}
	seen := make(map[*analyze.TypeInfo]bool)

	for depth := 0; len(current) > 0; depth++ {
		var next []level[*analyze.TypeInfo]

		for _, lv := range current {
			st := lv.typ
			if st == nil || seen[st] {
				continue
			}

			seen[st] = true

			for _, f := range st.Fields {
				if label, ok := f.Tag.Lookup(x.tagKey); ok && label != "" {
					out = append(out, Label{Label: label, Storage: f.Name, Depth: depth, Via: lv.via})
				}

				if f.Embedded {
					next = append(next, below(lv.via, f.Name, f.Type.Struct()))
				}
			}
		}

		current = next
	}

	return out
}
