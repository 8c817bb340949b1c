package memory

import "github.com/easeaico/project-zizi/internal/types"

// Merge folds fragment into current and returns a new record; current is not
// modified. Lists are unioned with existing items first and new items in
// fragment order, deduplicated by exact string equality. Name is adopted only
// while current has none.
//
// Merging the same fragment twice is a no-op the second time.
func Merge(current types.CanonicalMemory, fragment Fragment) types.CanonicalMemory {
	out := current.Clone()

	if out.Name == "" && fragment.Name != "" {
		out.Name = fragment.Name
	}

	frag := types.CanonicalMemory(fragment)
	for _, f := range types.ListFields {
		ref := f.Ref(&out)
		*ref = union(*ref, *f.Ref(&frag))
	}
	return out
}

func union(existing, incoming []string) []string {
	out := make([]string, 0, len(existing)+len(incoming))
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	for _, group := range [][]string{existing, incoming} {
		for _, item := range group {
			if _, dup := seen[item]; dup {
				continue
			}
			seen[item] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}
