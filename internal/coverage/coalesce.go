package coverage

import (
	"github.com/arya-analytics/sweepline/telem"
	"github.com/bits-and-blooms/bitset"
)

// Coalesce merges runs of adjacent blocks that are covered by the same set of
// ranges, returning the maximal blocks and their sets. Blocks must be
// ascending. Two blocks are only merged when adjacent reports that nothing
// lies between them.
func Coalesce[P telem.Point](
	blocks []telem.Range[P],
	sets []*bitset.BitSet,
	adjacent func(prev, next telem.Range[P]) bool,
) ([]telem.Range[P], []*bitset.BitSet) {
	if len(blocks) == 0 {
		return blocks, sets
	}
	oBlocks := []telem.Range[P]{blocks[0]}
	oSets := []*bitset.BitSet{sets[0]}
	for i := 1; i < len(blocks); i++ {
		last := len(oBlocks) - 1
		if oSets[last].Equal(sets[i]) && adjacent(oBlocks[last], blocks[i]) {
			oBlocks[last].End = blocks[i].End
			continue
		}
		oBlocks = append(oBlocks, blocks[i])
		oSets = append(oSets, sets[i])
	}
	return oBlocks, oSets
}
