package repair

import (
	"sort"
	"strings"

	"gallery-manager/core/similarity"
)

const (
	// candidateCap bounds the pooled candidate set per URL.
	candidateCap = 500
	// scoringCap bounds how many candidates reach the expensive scorer.
	scoringCap = 50
)

// Index holds the reference file listing under three cheap lookups:
// exact last directory segment, separator/case-normalized directory
// path, and filename trigram postings. The lookups are unioned into a
// bounded candidate pool so no single source starves the others.
type Index struct {
	files     []FileEntry
	byAlbum   map[string][]*FileEntry
	byDirNorm map[string][]*FileEntry
	byTrigram map[string][]*FileEntry
}

// NewIndex builds the lookups over the parsed listing.
func NewIndex(files []FileEntry) *Index {
	idx := &Index{
		files:     files,
		byAlbum:   make(map[string][]*FileEntry),
		byDirNorm: make(map[string][]*FileEntry),
		byTrigram: make(map[string][]*FileEntry),
	}

	for i := range idx.files {
		f := &idx.files[i]

		if n := len(f.DirSegments); n > 0 {
			album := f.DirSegments[n-1]
			idx.byAlbum[album] = append(idx.byAlbum[album], f)
		}

		norm := similarity.NormalizeSeparators(f.DirPath)
		idx.byDirNorm[norm] = append(idx.byDirNorm[norm], f)

		for g := range similarity.Trigrams(strings.ToLower(f.Filename)) {
			idx.byTrigram[g] = append(idx.byTrigram[g], f)
		}
	}

	return idx
}

// Files returns the indexed listing.
func (idx *Index) Files() []FileEntry {
	return idx.files
}

// Lookup returns the files in the album directory named exactly seg.
func (idx *Index) Lookup(seg string) []*FileEntry {
	return idx.byAlbum[seg]
}

// Candidates pools candidate files for a mismatch from the three
// lookups, each contributing at most a third of the cap. A URL without
// directory segments yields no candidates. Pools larger than scoringCap
// are narrowed by a cheap heuristic before expensive scoring.
func (idx *Index) Candidates(m *Mismatch) []*FileEntry {
	if len(m.DirSegments) == 0 {
		return nil
	}

	perSource := candidateCap / 3
	seen := make(map[*FileEntry]struct{})
	var pool []*FileEntry

	add := func(files []*FileEntry, limit int) {
		taken := 0
		for _, f := range files {
			if taken >= limit {
				break
			}
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			pool = append(pool, f)
			taken++
		}
	}

	// Source 1: exact album directory match
	add(idx.byAlbum[m.Album()], perSource)

	// Source 2: separator/case variants of the full directory path
	add(idx.byDirNorm[similarity.NormalizeSeparators(strings.Join(m.DirSegments, "/"))], perSource)

	// Source 3: filename trigram overlap, best overlapping first
	add(idx.trigramCandidates(m.BaseFilename, perSource), perSource)

	if len(pool) > scoringCap {
		pool = idx.narrow(m, pool)
	}
	return pool
}

// trigramCandidates ranks files by how many filename trigrams they share
// with name and returns up to limit of the best.
func (idx *Index) trigramCandidates(name string, limit int) []*FileEntry {
	counts := make(map[*FileEntry]int)
	for g := range similarity.Trigrams(strings.ToLower(name)) {
		for _, f := range idx.byTrigram[g] {
			counts[f]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	ranked := make([]*FileEntry, 0, len(counts))
	for f := range counts {
		ranked = append(ranked, f)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return ranked[i].FullPath < ranked[j].FullPath
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// narrow keeps the scoringCap most promising candidates by a cheap
// heuristic: trigram overlap count, a first-character match bonus, and
// length similarity of the filenames.
func (idx *Index) narrow(m *Mismatch, pool []*FileEntry) []*FileEntry {
	name := strings.ToLower(m.BaseFilename)

	scores := make(map[*FileEntry]float64, len(pool))
	for _, f := range pool {
		candidate := strings.ToLower(f.Filename)
		score := float64(similarity.TrigramOverlap(name, candidate))
		if name != "" && candidate != "" && name[0] == candidate[0] {
			score += 1
		}
		longer := len(name)
		shorter := len(candidate)
		if shorter > longer {
			longer, shorter = shorter, longer
		}
		if longer > 0 {
			score += float64(shorter) / float64(longer)
		}
		scores[f] = score
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return scores[pool[i]] > scores[pool[j]]
	})
	return pool[:scoringCap]
}
