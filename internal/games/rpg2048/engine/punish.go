package engine

import (
	"math/rand"

	"github.com/vovakirdan/rpg2048/internal/config"
)

// Bucket is a value band used by weighted punishment.
type Bucket int

const (
	BucketLow Bucket = iota
	BucketMid
	BucketHigh
	BucketEpic
	numBuckets
)

// String returns the bucket name.
func (b Bucket) String() string {
	switch b {
	case BucketLow:
		return "low"
	case BucketMid:
		return "mid"
	case BucketHigh:
		return "high"
	case BucketEpic:
		return "epic"
	default:
		return "unknown"
	}
}

// Tile is a positioned tile value.
type Tile struct {
	Pos
	Value int
}

// BucketOf returns the band of a tile value.
func BucketOf(v int, b config.BucketConfig) Bucket {
	switch {
	case v <= b.LowMax:
		return BucketLow
	case v <= b.MidMax:
		return BucketMid
	case v <= b.HighMax:
		return BucketHigh
	default:
		return BucketEpic
	}
}

// drawBucket maps a uniform draw in [0, 1) onto the cumulative thresholds.
func drawBucket(r float64, thresholds []float64) Bucket {
	for i, th := range thresholds {
		if i >= int(BucketEpic) {
			break
		}
		if r < th {
			return Bucket(i)
		}
	}
	return BucketEpic
}

// SelectPunishTarget picks one ordinary tile by weighted bucket. When the
// drawn bucket is empty the first non-empty bucket from low to epic is used.
// ok is false only when the grid holds no ordinary tile.
func SelectPunishTarget(g Grid, b config.BucketConfig, rng *rand.Rand) (t Tile, ok bool) {
	var buckets [numBuckets][]Tile
	for r := range Size {
		for c := range Size {
			if v := g[r][c]; v > 0 {
				k := BucketOf(v, b)
				buckets[k] = append(buckets[k], Tile{Pos{r, c}, v})
			}
		}
	}

	chosen := buckets[drawBucket(rng.Float64(), b.Thresholds)]
	if len(chosen) == 0 {
		for _, bucket := range buckets {
			if len(bucket) > 0 {
				chosen = bucket
				break
			}
		}
	}
	if len(chosen) == 0 {
		return Tile{}, false
	}
	return chosen[rng.Intn(len(chosen))], true
}

// PickDeletions selects up to count distinct tiles to delete. A pick above
// the deflection bound is re-rolled once against the same board, which can
// land on the same tile again. Fewer tiles are returned when the board runs out.
func PickDeletions(g Grid, count int, p config.PunishConfig, rng *rand.Rand) []Tile {
	var picks []Tile
	tmp := g
	for range count {
		t, ok := SelectPunishTarget(tmp, p.Buckets, rng)
		if !ok {
			break
		}
		if t.Value > p.DeflectAbove {
			if d, ok := SelectPunishTarget(tmp, p.Buckets, rng); ok {
				t = d
			}
		}
		picks = append(picks, t)
		tmp.Set(t.Pos, Empty)
	}
	return picks
}
