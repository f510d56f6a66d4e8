// SPDX-License-Identifier: MPL-2.0

package langjs

import (
	"fmt"

	"github.com/langjs/langjs/pkg/localetree"
)

// MergeVendor re-roots vendor, shaped package -> locale -> group -> ..., to
// locale -> "vendor" -> package -> group -> ... and merges it into a copy of
// main. Locales that only exist in vendor are appended after the existing
// ones. Keys outside the reserved "vendor" key are never modified, and a
// locale that already carries its own "vendor" entry fails with a
// *localetree.CollisionError instead of being merged into.
func MergeVendor(main, vendor *localetree.Node) (*localetree.Node, error) {
	out := main.Clone()
	if vendor == nil {
		return out, nil
	}

	for pkg, locales := range vendor.All() {
		if !locales.IsBranch() {
			return nil, fmt.Errorf("vendor package %q: expected locale directories", pkg)
		}
		for locale, groups := range locales.All() {
			if !groups.IsBranch() {
				return nil, fmt.Errorf("vendor package %q: locale %q: expected group files", pkg, locale)
			}
			if existing, ok := main.Lookup(locale, VendorKey); ok {
				return nil, fmt.Errorf("vendor package %q: %w", pkg, &localetree.CollisionError{
					Path:     []string{locale, VendorKey},
					Existing: existing.Kind(),
					Incoming: localetree.KindBranch,
				})
			}
			patch := localetree.NewBranch()
			if err := patch.SetPath([]string{locale, VendorKey, pkg}, groups); err != nil {
				return nil, err
			}
			if err := localetree.Merge(out, patch); err != nil {
				return nil, fmt.Errorf("vendor package %q: %w", pkg, err)
			}
		}
	}
	return out, nil
}
