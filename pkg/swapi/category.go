package swapi

import (
	"fmt"
	"strings"
)

// Category is one of the fixed SWAPI content types.
type Category int

const (
	Film Category = iota
	People
	Planet
	Species
	Starship
	Vehicle
)

// Categories lists every category in display order.
var Categories = []Category{Film, People, Planet, Species, Starship, Vehicle}

// FieldSpec names one attribute of a record in both wire dialects.
type FieldSpec struct {
	Label   string
	REST    string
	GraphQL string
	Format  string // optional fmt verb wrapping the rendered value, e.g. "Episode %s"
}

type categoryInfo struct {
	key      string
	label    string
	restPath string

	// GraphQL root fields: allFilms { films { ... } } and film(id:) { ... }
	listRoot   string
	connection string
	itemRoot   string

	titleREST    string
	titleGraphQL string
	subtitle     FieldSpec
	fields       []FieldSpec
}

var categoryTable = map[Category]categoryInfo{
	Film: {
		key: "film", label: "Films", restPath: "films",
		listRoot: "allFilms", connection: "films", itemRoot: "film",
		titleREST: "title", titleGraphQL: "title",
		subtitle: FieldSpec{Label: "Episode", REST: "episode_id", GraphQL: "episodeID", Format: "Episode %s"},
		fields: []FieldSpec{
			{Label: "Episode", REST: "episode_id", GraphQL: "episodeID"},
			{Label: "Director", REST: "director", GraphQL: "director"},
			{Label: "Producers", REST: "producer", GraphQL: "producers"},
			{Label: "Release date", REST: "release_date", GraphQL: "releaseDate"},
			{Label: "Opening crawl", REST: "opening_crawl", GraphQL: "openingCrawl"},
		},
	},
	People: {
		key: "people", label: "People", restPath: "people",
		listRoot: "allPeople", connection: "people", itemRoot: "person",
		titleREST: "name", titleGraphQL: "name",
		subtitle: FieldSpec{Label: "Birth year", REST: "birth_year", GraphQL: "birthYear", Format: "Born %s"},
		fields: []FieldSpec{
			{Label: "Birth year", REST: "birth_year", GraphQL: "birthYear"},
			{Label: "Gender", REST: "gender", GraphQL: "gender"},
			{Label: "Height", REST: "height", GraphQL: "height"},
			{Label: "Mass", REST: "mass", GraphQL: "mass"},
			{Label: "Hair color", REST: "hair_color", GraphQL: "hairColor"},
			{Label: "Skin color", REST: "skin_color", GraphQL: "skinColor"},
			{Label: "Eye color", REST: "eye_color", GraphQL: "eyeColor"},
		},
	},
	Planet: {
		key: "planet", label: "Planets", restPath: "planets",
		listRoot: "allPlanets", connection: "planets", itemRoot: "planet",
		titleREST: "name", titleGraphQL: "name",
		subtitle: FieldSpec{Label: "Climate", REST: "climate", GraphQL: "climates"},
		fields: []FieldSpec{
			{Label: "Climate", REST: "climate", GraphQL: "climates"},
			{Label: "Terrain", REST: "terrain", GraphQL: "terrains"},
			{Label: "Population", REST: "population", GraphQL: "population"},
			{Label: "Diameter", REST: "diameter", GraphQL: "diameter"},
			{Label: "Gravity", REST: "gravity", GraphQL: "gravity"},
			{Label: "Rotation period", REST: "rotation_period", GraphQL: "rotationPeriod"},
			{Label: "Orbital period", REST: "orbital_period", GraphQL: "orbitalPeriod"},
			{Label: "Surface water", REST: "surface_water", GraphQL: "surfaceWater"},
		},
	},
	Species: {
		key: "species", label: "Species", restPath: "species",
		listRoot: "allSpecies", connection: "species", itemRoot: "species",
		titleREST: "name", titleGraphQL: "name",
		subtitle: FieldSpec{Label: "Classification", REST: "classification", GraphQL: "classification"},
		fields: []FieldSpec{
			{Label: "Classification", REST: "classification", GraphQL: "classification"},
			{Label: "Designation", REST: "designation", GraphQL: "designation"},
			{Label: "Language", REST: "language", GraphQL: "language"},
			{Label: "Average height", REST: "average_height", GraphQL: "averageHeight"},
			{Label: "Average lifespan", REST: "average_lifespan", GraphQL: "averageLifespan"},
			{Label: "Eye colors", REST: "eye_colors", GraphQL: "eyeColors"},
			{Label: "Hair colors", REST: "hair_colors", GraphQL: "hairColors"},
			{Label: "Skin colors", REST: "skin_colors", GraphQL: "skinColors"},
		},
	},
	Starship: {
		key: "starship", label: "Starships", restPath: "starships",
		listRoot: "allStarships", connection: "starships", itemRoot: "starship",
		titleREST: "name", titleGraphQL: "name",
		subtitle: FieldSpec{Label: "Model", REST: "model", GraphQL: "model"},
		fields: []FieldSpec{
			{Label: "Model", REST: "model", GraphQL: "model"},
			{Label: "Class", REST: "starship_class", GraphQL: "starshipClass"},
			{Label: "Manufacturers", REST: "manufacturer", GraphQL: "manufacturers"},
			{Label: "Cost in credits", REST: "cost_in_credits", GraphQL: "costInCredits"},
			{Label: "Length", REST: "length", GraphQL: "length"},
			{Label: "Crew", REST: "crew", GraphQL: "crew"},
			{Label: "Passengers", REST: "passengers", GraphQL: "passengers"},
			{Label: "Max atmosphering speed", REST: "max_atmosphering_speed", GraphQL: "maxAtmospheringSpeed"},
			{Label: "Hyperdrive rating", REST: "hyperdrive_rating", GraphQL: "hyperdriveRating"},
			{Label: "MGLT", REST: "MGLT", GraphQL: "MGLT"},
			{Label: "Cargo capacity", REST: "cargo_capacity", GraphQL: "cargoCapacity"},
			{Label: "Consumables", REST: "consumables", GraphQL: "consumables"},
		},
	},
	Vehicle: {
		key: "vehicle", label: "Vehicles", restPath: "vehicles",
		listRoot: "allVehicles", connection: "vehicles", itemRoot: "vehicle",
		titleREST: "name", titleGraphQL: "name",
		subtitle: FieldSpec{Label: "Model", REST: "model", GraphQL: "model"},
		fields: []FieldSpec{
			{Label: "Model", REST: "model", GraphQL: "model"},
			{Label: "Class", REST: "vehicle_class", GraphQL: "vehicleClass"},
			{Label: "Manufacturers", REST: "manufacturer", GraphQL: "manufacturers"},
			{Label: "Cost in credits", REST: "cost_in_credits", GraphQL: "costInCredits"},
			{Label: "Length", REST: "length", GraphQL: "length"},
			{Label: "Crew", REST: "crew", GraphQL: "crew"},
			{Label: "Passengers", REST: "passengers", GraphQL: "passengers"},
			{Label: "Max atmosphering speed", REST: "max_atmosphering_speed", GraphQL: "maxAtmospheringSpeed"},
			{Label: "Cargo capacity", REST: "cargo_capacity", GraphQL: "cargoCapacity"},
			{Label: "Consumables", REST: "consumables", GraphQL: "consumables"},
		},
	},
}

// info panics on an unmapped category: every Category constant has an entry,
// so reaching the panic means a constant was added without one.
func (c Category) info() categoryInfo {
	info, ok := categoryTable[c]
	if !ok {
		panic(fmt.Sprintf("swapi: unmapped category %d", int(c)))
	}
	return info
}

func (c Category) Valid() bool {
	_, ok := categoryTable[c]
	return ok
}

// Key is the stable identifier used in host keys, snapshots and the CLI.
func (c Category) Key() string { return c.info().key }

// Label is the display label shown as the screen title.
func (c Category) Label() string { return c.info().label }

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return c.Label()
}

// Fields returns the detail field catalog of the category.
func (c Category) Fields() []FieldSpec {
	fields := c.info().fields
	out := make([]FieldSpec, len(fields))
	copy(out, fields)
	return out
}

// ListQuery is the GraphQL document fetching every record of the category.
func (c Category) ListQuery() string {
	info := c.info()
	return fmt.Sprintf("query { %s { %s { id %s %s } } }",
		info.listRoot, info.connection, info.titleGraphQL, info.subtitle.GraphQL)
}

// ItemQuery is the GraphQL document fetching one record by id.
func (c Category) ItemQuery() string {
	info := c.info()
	selection := []string{"id", info.titleGraphQL}
	for _, f := range info.fields {
		selection = append(selection, f.GraphQL)
	}
	return fmt.Sprintf("query ($id: ID) { %s(id: $id) { %s } }",
		info.itemRoot, strings.Join(selection, " "))
}

// ListPath is the REST collection path, e.g. "films/".
func (c Category) ListPath() string { return c.info().restPath + "/" }

// ItemPath is the REST resource path, e.g. "films/1/".
func (c Category) ItemPath(id string) string {
	return fmt.Sprintf("%s/%s/", c.info().restPath, id)
}

var categoryAliases = map[string]Category{
	"film": Film, "films": Film, "movie": Film, "movies": Film,
	"people": People, "person": People, "character": People, "characters": People,
	"planet": Planet, "planets": Planet,
	"species": Species,
	"starship": Starship, "starships": Starship,
	"vehicle": Vehicle, "vehicles": Vehicle,
}

// ParseCategory resolves a key, label or common spelling to a Category.
func ParseCategory(s string) (Category, error) {
	if c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}
