package leveldata

import (
	"fmt"
	"io/fs"
	"sort"

	"github.com/lafriks/go-tiled"
)

// LoadArena parses a TMX file and returns wall geometry and spawn points.
// It takes an fs.FS so callers can pass embed.FS or os.DirFS.
func LoadArena(fsys fs.FS, tmxPath string) (*ArenaData, error) {
	arenaMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	data := &ArenaData{
		Width:  arenaMap.Width * arenaMap.TileWidth,
		Height: arenaMap.Height * arenaMap.TileHeight,
	}

	tileW := float64(arenaMap.TileWidth)
	tileH := float64(arenaMap.TileHeight)
	for _, layer := range arenaMap.Layers {
		if layer.Name != "walls" {
			continue
		}
		for y := 0; y < arenaMap.Height; y++ {
			for x := 0; x < arenaMap.Width; x++ {
				tile := layer.Tiles[y*arenaMap.Width+x]
				if tile.IsNil() {
					continue
				}
				data.Walls = append(data.Walls, WallRect{
					X: float64(x) * tileW,
					Y: float64(y) * tileH,
					W: tileW,
					H: tileH,
				})
			}
		}
		break
	}

	for _, og := range arenaMap.ObjectGroups {
		if og.Name != "Spawns" {
			continue
		}
		for _, o := range og.Objects {
			data.SpawnPoints = append(data.SpawnPoints, SpawnPoint{
				X:     o.X,
				Y:     o.Y,
				Index: o.Properties.GetInt("spawnIndex"),
			})
		}
	}

	// Sort spawns left-to-right for consistent assignment.
	sort.Slice(data.SpawnPoints, func(i, j int) bool {
		return data.SpawnPoints[i].X < data.SpawnPoints[j].X
	})

	return data, nil
}

// DefaultArena returns a bounded empty arena for servers started without a
// TMX file: four boundary walls and spawn points spread along the middle.
func DefaultArena(width, height int) *ArenaData {
	w := float64(width)
	h := float64(height)
	const thick = 16.0

	data := &ArenaData{
		Width:  width,
		Height: height,
		Walls: []WallRect{
			{X: 0, Y: 0, W: w, H: thick},
			{X: 0, Y: h - thick, W: w, H: thick},
			{X: 0, Y: 0, W: thick, H: h},
			{X: w - thick, Y: 0, W: thick, H: h},
		},
	}
	for i := 0; i < 4; i++ {
		data.SpawnPoints = append(data.SpawnPoints, SpawnPoint{
			X:     w * float64(i+1) / 5,
			Y:     h / 2,
			Index: i,
		})
	}
	return data
}
