// Copyright 2024 The EMBLOCS Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package emblocs

import "sort"

// sortedInsert inserts idx into *list keeping it in ascending order of
// nameOf(idx), translating linked_list.c's ll_insert from a pointer-linked
// list into an index slice kept sorted by binary search. Duplicate names
// are rejected exactly as ll_insert rejects them (comparator returns 0).
func sortedInsert[K ~int32](list *[]K, idx K, nameOf func(K) string) error {
	name := nameOf(idx)
	l := *list
	pos := sort.Search(len(l), func(i int) bool { return nameOf(l[i]) >= name })
	if pos < len(l) && nameOf(l[pos]) == name {
		return ErrNameExists
	}
	l = append(l, 0)
	copy(l[pos+1:], l[pos:])
	l[pos] = idx
	*list = l
	return nil
}

// sortedFind is the index-slice translation of ll_find.
func sortedFind[K ~int32](list []K, name string, nameOf func(K) string) (K, bool) {
	pos := sort.Search(len(list), func(i int) bool { return nameOf(list[i]) >= name })
	if pos < len(list) && nameOf(list[pos]) == name {
		return list[pos], true
	}
	var zero K
	return zero, false
}

// sortedDelete is the index-slice translation of ll_delete.
func sortedDelete[K ~int32](list *[]K, name string, nameOf func(K) string) bool {
	l := *list
	pos := sort.Search(len(l), func(i int) bool { return nameOf(l[i]) >= name })
	if pos < len(l) && nameOf(l[pos]) == name {
		*list = append(l[:pos], l[pos+1:]...)
		return true
	}
	return false
}
