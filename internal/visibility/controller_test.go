package visibility

import (
	"testing"

	"github.com/arloliu/camlight/internal/assignment"
	"github.com/arloliu/camlight/internal/logging"
	"github.com/arloliu/camlight/internal/metrics"
	"github.com/arloliu/camlight/internal/namecodec"
	"github.com/arloliu/camlight/scene"
	"github.com/arloliu/camlight/types"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*scene.Memory, *assignment.Store, *Controller) {
	t.Helper()

	m := scene.NewMemory()
	require.NoError(t, m.AddCamera("Camera"))
	require.NoError(t, m.AddCamera("Camera.001"))
	require.NoError(t, m.AddLight("C_00_Key", types.Hidden(true)))
	require.NoError(t, m.AddLight("C_01_Fill", types.Visibility{}))
	require.NoError(t, m.AddLight("G_Ambient", types.Visibility{HiddenInViewport: true}))
	require.NoError(t, m.AddLight("Unassigned", types.Visibility{}))

	logger := logging.NewTest(t)
	store := assignment.NewStore(namecodec.New("Camera"), logger, metrics.NewNop())
	store.Load(m)

	return m, store, NewController(store, logger, metrics.NewNop())
}

func TestController_Apply(t *testing.T) {
	m, _, c := setup(t)

	res := c.Apply(m, "Camera")

	require.Equal(t, Result{Shown: 2, Hidden: 2, Changed: 4}, res)
	require.Equal(t, map[string]types.Visibility{
		"C_00_Key":   types.Hidden(false),
		"C_01_Fill":  types.Hidden(true),
		"G_Ambient":  types.Hidden(false),
		"Unassigned": types.Hidden(true),
	}, m.LightStates())
}

func TestController_Apply_SwitchCamera(t *testing.T) {
	m, _, c := setup(t)

	c.Apply(m, "Camera")
	res := c.Apply(m, "Camera.001")

	require.Equal(t, 2, res.Changed)
	states := m.LightStates()
	require.Equal(t, types.Hidden(true), states["C_00_Key"])
	require.Equal(t, types.Hidden(false), states["C_01_Fill"])
	require.Equal(t, types.Hidden(false), states["G_Ambient"])
	require.Equal(t, types.Hidden(true), states["Unassigned"])
}

func TestController_Apply_Idempotent(t *testing.T) {
	m, _, c := setup(t)

	c.Apply(m, "Camera")
	res := c.Apply(m, "Camera")

	require.Zero(t, res.Changed)
	require.Equal(t, 2, res.Shown)
}

func TestController_Apply_EmptyCamera(t *testing.T) {
	m, _, c := setup(t)
	before := m.LightStates()

	res := c.Apply(m, "")

	require.Equal(t, Result{}, res)
	require.Equal(t, before, m.LightStates())
}

func TestController_Apply_ColdCache(t *testing.T) {
	m, store, c := setup(t)
	cold := assignment.NewStore(namecodec.New("Camera"), logging.NewNop(), metrics.NewNop())
	c.assignments = cold

	c.Apply(m, "Camera.001")

	require.True(t, cold.Contains("Camera.001", "C_01_Fill"))
	require.Equal(t, store.Fingerprint(), cold.Fingerprint())
	require.Equal(t, types.Hidden(false), m.LightStates()["C_01_Fill"])
}

func TestSnapshotRestore(t *testing.T) {
	m, _, c := setup(t)
	original := m.LightStates()

	backup := Snapshot(m)
	require.Len(t, backup, 4)

	c.Apply(m, "Camera")
	require.True(t, m.Remove("Unassigned"))

	restored, skipped := Restore(m, backup)
	require.Equal(t, 3, restored)
	require.Equal(t, 1, skipped)

	delete(original, "Unassigned")
	require.Equal(t, original, m.LightStates())
}

func TestBackup_Rename(t *testing.T) {
	b := Backup{"Key": types.Hidden(true)}

	b.Rename("Key", "G_Key")
	require.Equal(t, Backup{"G_Key": types.Hidden(true)}, b)

	b.Rename("Missing", "X")
	b.Rename("G_Key", "G_Key")
	require.Equal(t, Backup{"G_Key": types.Hidden(true)}, b)
}
