// merge.go - Snapshot copies and updates.
package settings

import "maps"

// Clone returns a deep copy of s; the copy shares no slices or maps with s.
func (s CanvasSettings) Clone() CanvasSettings {
	out := s
	if s.Text.Letters != nil {
		out.Text.Letters = append([]string(nil), s.Text.Letters...)
	}
	if s.Text.LetterColors != nil {
		out.Text.LetterColors = make(map[int]LetterColor, len(s.Text.LetterColors))
		for k, v := range s.Text.LetterColors {
			if v.UseGradient != nil {
				g := *v.UseGradient
				v.UseGradient = &g
			}
			out.Text.LetterColors[k] = v
		}
	}
	return out
}

// Update returns a new snapshot with fn applied to a deep copy of s and the
// revision bumped. s itself is left untouched.
func Update(s CanvasSettings, fn func(*CanvasSettings)) CanvasSettings {
	next := s.Clone()
	if fn != nil {
		fn(&next)
	}
	next.Revision = s.Revision + 1
	return next
}

// SetLetterColor returns an update that overrides the label colours of index i.
func SetLetterColor(i int, lc LetterColor) func(*CanvasSettings) {
	return func(s *CanvasSettings) {
		colors := make(map[int]LetterColor, len(s.Text.LetterColors)+1)
		maps.Copy(colors, s.Text.LetterColors)
		colors[i] = lc
		s.Text.LetterColors = colors
	}
}
