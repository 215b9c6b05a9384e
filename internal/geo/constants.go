package geo

// Layout characters.
const (
	CellNoData = ' ' // outside the navigable world
	CellFloor  = '.' // walkable at level 0
	CellWall   = '#' // blocked, extruded into occlusion geometry
)

// Layout levels '1'..'9' are walkable at level*LevelHeight.
const maxLevel = 9

// Grid defaults.
const (
	DefaultCellSize    = 100.0 // 1 cell = 1m
	DefaultLevelHeight = 40.0
	DefaultWallHeight  = 300.0
)
