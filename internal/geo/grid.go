// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package geo

import (
	"math"
	"sort"
	"sync"
)

// Grid divides geographic space into cells for fast proximity queries.
// Instead of O(n) comparisons to find places near a visitor, we only check
// cells near the query point, reducing to O(k) where k = entries in nearby
// cells.
//
// Time Complexity:
//   - Insert: O(1)
//   - Query nearby: O(k log k) including the distance sort
//   - Remove: O(1)
type Grid struct {
	mu       sync.RWMutex
	cells    map[cellKey]*cell // Grid cells containing entries
	cellSize float64           // Cell size in degrees
	entries  map[string]*Entry // Index by ID for fast lookup/removal
}

// cellKey represents a grid cell coordinate.
type cellKey struct {
	x, y int
}

// cell contains all entries in a grid cell.
type cell struct {
	entries []*Entry
}

// Entry represents a place indexed in the grid.
type Entry struct {
	ID   string
	Lat  float64
	Lon  float64
	Data any
	key  cellKey // Cached cell key for fast removal
}

// Neighbor is a grid entry annotated with its distance from a query point.
type Neighbor struct {
	Entry      *Entry
	DistanceKM float64
}

// NewGrid creates a new spatial grid.
// cellSizeKm specifies the approximate cell size in kilometers. Smaller
// cells are more precise but mean more cells to check per query. 5km works
// well for city-scale place lookups.
func NewGrid(cellSizeKm float64) *Grid {
	if cellSizeKm <= 0 {
		cellSizeKm = 5
	}

	return &Grid{
		cells:    make(map[cellKey]*cell),
		cellSize: cellSizeKm / kmPerDegree,
		entries:  make(map[string]*Entry),
	}
}

// keyFor returns the cell key for a lat/lon coordinate.
func (g *Grid) keyFor(lat, lon float64) cellKey {
	lon = normalizeLon(lon)

	return cellKey{
		x: int(math.Floor(lon / g.cellSize)),
		y: int(math.Floor(lat / g.cellSize)),
	}
}

// Insert adds an entry to the grid.
// If an entry with the same ID exists, it's updated.
func (g *Grid) Insert(id string, lat, lon float64, data any) {
	g.mu.Lock()
	defer g.mu.Unlock()

	// Remove existing entry if present
	if existing, ok := g.entries[id]; ok {
		g.removeFromCellUnlocked(existing)
	}

	key := g.keyFor(lat, lon)

	entry := &Entry{
		ID:   id,
		Lat:  lat,
		Lon:  lon,
		Data: data,
		key:  key,
	}

	// Add to cell
	c, exists := g.cells[key]
	if !exists {
		c = &cell{entries: make([]*Entry, 0, 4)}
		g.cells[key] = c
	}
	c.entries = append(c.entries, entry)

	// Add to index
	g.entries[id] = entry
}

// Remove removes an entry by ID.
func (g *Grid) Remove(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	entry, exists := g.entries[id]
	if !exists {
		return false
	}

	g.removeFromCellUnlocked(entry)
	delete(g.entries, id)
	return true
}

// removeFromCellUnlocked removes an entry from its cell (caller must hold lock).
func (g *Grid) removeFromCellUnlocked(entry *Entry) {
	c, exists := g.cells[entry.key]
	if !exists {
		return
	}

	// Find and remove entry from cell
	for i, e := range c.entries {
		if e.ID == entry.ID {
			// Swap with last and truncate
			c.entries[i] = c.entries[len(c.entries)-1]
			c.entries = c.entries[:len(c.entries)-1]
			break
		}
	}

	// Remove empty cell
	if len(c.entries) == 0 {
		delete(g.cells, entry.key)
	}
}

// Get returns an entry by ID.
func (g *Grid) Get(id string) (*Entry, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	entry, exists := g.entries[id]
	if !exists {
		return nil, false
	}

	// Return a copy to prevent modification
	entryCopy := *entry
	return &entryCopy, true
}

// QueryNearby returns all entries within radiusKm of the given point,
// sorted by distance ascending.
func (g *Grid) QueryNearby(lat, lon, radiusKm float64) []Neighbor {
	g.mu.RLock()
	defer g.mu.RUnlock()

	// Calculate how many cells to check in each direction
	cellsToCheck := int(math.Ceil(radiusKm/kmPerDegree/g.cellSize)) + 1
	center := g.keyFor(lat, lon)

	var results []Neighbor

	// Check all cells in the bounding box
	for dx := -cellsToCheck; dx <= cellsToCheck; dx++ {
		for dy := -cellsToCheck; dy <= cellsToCheck; dy++ {
			key := cellKey{x: center.x + dx, y: center.y + dy}
			c, exists := g.cells[key]
			if !exists {
				continue
			}

			for _, entry := range c.entries {
				// Cell membership is approximate; verify with actual distance
				dist := Distance(lat, lon, entry.Lat, entry.Lon)
				if dist <= radiusKm {
					entryCopy := *entry
					results = append(results, Neighbor{Entry: &entryCopy, DistanceKM: dist})
				}
			}
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceKM < results[j].DistanceKM
	})

	return results
}

// Size returns the total number of entries.
func (g *Grid) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.entries)
}

// NumCells returns the number of non-empty cells.
func (g *Grid) NumCells() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.cells)
}

// Clear removes all entries.
func (g *Grid) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.cells = make(map[cellKey]*cell)
	g.entries = make(map[string]*Entry)
}
