package assignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveKnownModule(t *testing.T) {
	dir := NewDirectory(
		map[string]string{"PPC": "Vignesh"},
		map[string]string{"PPC": "Annamalai"},
		map[string]string{"Annamalai": "annamalai.s@kalsofte.com"},
	)

	got := dir.Resolve("PPC")
	assert.Equal(t, "Vignesh", got.SupportEngineer)
	assert.Equal(t, "Annamalai", got.Developer)
	assert.Equal(t, "annamalai.s@kalsofte.com", got.DeveloperEmail)
}

func TestResolveUnknownModuleYieldsSentinel(t *testing.T) {
	dir := Default()

	got := dir.Resolve("No Such Module")
	assert.Equal(t, Unassigned, got.SupportEngineer)
	assert.Equal(t, Unassigned, got.Developer)
	assert.Empty(t, got.DeveloperEmail)
}

func TestResolveDeveloperWithoutContact(t *testing.T) {
	dir := NewDirectory(
		map[string]string{"GMS": "Seenivasan"},
		map[string]string{"GMS": "Mariyaiya"},
		nil,
	)

	got := dir.Resolve("GMS")
	assert.Equal(t, "Mariyaiya", got.Developer)
	assert.Empty(t, got.DeveloperEmail)
}

func TestDefaultDirectoryMappings(t *testing.T) {
	dir := Default()

	got := dir.Resolve("PPC")
	assert.Equal(t, "Vignesh", got.SupportEngineer)
	assert.Equal(t, "Annamalai", got.Developer)
	assert.Equal(t, "annamalai.s@kalsofte.com", got.DeveloperEmail)

	got = dir.Resolve("Payroll")
	assert.Equal(t, "Palanivel", got.SupportEngineer)
	assert.Equal(t, "Sasi", got.Developer)
	assert.Equal(t, "sasikumar.r@kalsofte.com", got.DeveloperEmail)

	// Developer-only module: no support engineer is configured for FGI.
	got = dir.Resolve("FGI")
	assert.Equal(t, Unassigned, got.SupportEngineer)
	assert.Equal(t, "Annamalai", got.Developer)
}

func TestDirectoryListings(t *testing.T) {
	dir := Default()

	modules := dir.Modules()
	require.NotEmpty(t, modules)
	assert.Contains(t, modules, "PPC")
	assert.Contains(t, modules, "Payroll")

	developers := dir.Developers()
	assert.Contains(t, developers, "Annamalai")
	assert.Contains(t, developers, "Udhay")

	engineers := dir.SupportEngineers()
	assert.Contains(t, engineers, "Vignesh")
	assert.Contains(t, engineers, "Muthuvel")

	// De-duplicated: Annamalai owns many modules but appears once.
	count := 0
	for _, d := range developers {
		if d == "Annamalai" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestDirectoryIsImmutable(t *testing.T) {
	src := map[string]string{"PPC": "Vignesh"}
	dir := NewDirectory(src, map[string]string{"PPC": "Annamalai"}, nil)

	src["PPC"] = "Someone Else"
	assert.Equal(t, "Vignesh", dir.Resolve("PPC").SupportEngineer)
}
