package ivconv

import (
	"reflect"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/ivconv/iv"
)

type Profile struct {
	Age      Nullable[int]
	Nickname Nullable[string]
}

type Target struct {
	Name string
}

func TestNullableConverter(t *testing.T) {
	srv := New()
	data, err := srv.Serialize(Profile{Age: Of(30)})
	require.NoError(t, err)
	expect := iv.NewMap().Set("Age", iv.Int(30)).Set("Nickname", iv.Null{})
	assert.True(t, iv.Equal(expect, data))

	restored := Profile{Nickname: Of("stale")}
	require.NoError(t, srv.Deserialize(data, &restored))
	assert.Equal(t, Profile{Age: Of(30)}, restored)

	age, ok := restored.Age.Get()
	assert.True(t, ok)
	assert.Equal(t, 30, age)
}

func TestKeyValueConverter(t *testing.T) {
	srv := New()
	data, err := srv.Serialize(NewKeyValue("a", 1))
	require.NoError(t, err)
	assert.True(t, iv.Equal(iv.NewMap().Set("Key", iv.String("a")).Set("Value", iv.Int(1)), data))

	var pair KeyValue[string, int]
	require.NoError(t, srv.Deserialize(data, &pair))
	assert.Equal(t, NewKeyValue("a", 1), pair)

	pair = NewKeyValue("kept", 2)
	err = srv.Deserialize(iv.NewMap().Set("Key", iv.String("b")), &pair)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Equal(t, NewKeyValue("kept", 2), pair)

	data, err = srv.Serialize(NewKeyValue[string, *int]("nil", nil))
	require.NoError(t, err)
	aMap, _ := iv.AsMap(data)
	assert.Equal(t, []string{"Key"}, aMap.Keys())
}

func TestUUIDConverter(t *testing.T) {
	srv := New()
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	data, err := srv.Serialize(id)
	require.NoError(t, err)
	assert.Equal(t, iv.String("6ba7b810-9dad-11d1-80b4-00c04fd430c8"), data)

	var restored uuid.UUID
	require.NoError(t, srv.Deserialize(data, &restored))
	assert.Equal(t, id, restored)

	err = srv.Deserialize(iv.String("not-a-uuid"), &restored)
	assert.ErrorIs(t, err, ErrParseFailure)
}

func TestDateConverter(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("default layout", func(t *testing.T) {
		srv := New()
		data, err := srv.Serialize(at)
		require.NoError(t, err)
		assert.Equal(t, iv.String("2024-01-02T03:04:05Z"), data)
		var restored time.Time
		require.NoError(t, srv.Deserialize(data, &restored))
		assert.True(t, at.Equal(restored))
	})

	t.Run("configured layout", func(t *testing.T) {
		srv := New(WithConfig(&Config{TimeLayout: "2006-01-02"}))
		data, err := srv.Serialize(at)
		require.NoError(t, err)
		assert.Equal(t, iv.String("2024-01-02"), data)
	})

	t.Run("member layout", func(t *testing.T) {
		type Event struct {
			Day     time.Time   `format:"timeLayout=2006-01-02"`
			Created time.Time   `format:"dateFormat=YYYY/MM/DD"`
			Slots   []time.Time `format:"timeLayout=15:04"`
			At      time.Time
		}
		srv := New()
		data, err := srv.Serialize(Event{Day: at, Created: at, Slots: []time.Time{at}, At: at})
		require.NoError(t, err)
		expect := iv.NewMap().
			Set("Day", iv.String("2024-01-02")).
			Set("Created", iv.String("2024/01/02")).
			Set("Slots", iv.Sequence{iv.String("03:04")}).
			Set("At", iv.String("2024-01-02T03:04:05Z"))
		assert.True(t, iv.Equal(expect, data), data)

		var restored Event
		require.NoError(t, srv.Deserialize(iv.NewMap().Set("Day", iv.String("2024-01-02")), &restored))
		assert.True(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC).Equal(restored.Day))
	})

	t.Run("loose input", func(t *testing.T) {
		srv := New()
		var restored time.Time
		require.NoError(t, srv.Deserialize(iv.String("2024-01-02 03:04:05"), &restored))
		assert.True(t, at.Equal(restored))
		require.NoError(t, srv.Deserialize(iv.Int(at.Unix()), &restored))
		assert.True(t, at.Equal(restored))
		err := srv.Deserialize(iv.String("yesterday"), &restored)
		assert.ErrorIs(t, err, ErrParseFailure)
	})

	t.Run("duration", func(t *testing.T) {
		srv := New()
		data, err := srv.Serialize(90 * time.Second)
		require.NoError(t, err)
		assert.Equal(t, iv.String("1m30s"), data)
		var restored time.Duration
		require.NoError(t, srv.Deserialize(data, &restored))
		assert.Equal(t, 90*time.Second, restored)
		require.NoError(t, srv.Deserialize(iv.Int(1000), &restored))
		assert.Equal(t, time.Microsecond, restored)
		err = srv.Deserialize(iv.String("soon"), &restored)
		assert.ErrorIs(t, err, ErrParseFailure)
	})
}

func TestTypeRefConverter(t *testing.T) {
	srv := New(WithType(reflect.TypeOf(Target{}), "target"))
	data, err := srv.Serialize(reflect.TypeOf(0))
	require.NoError(t, err)
	assert.Equal(t, iv.String("int"), data)

	data, err = srv.Serialize(reflect.TypeOf([]Target{}))
	require.NoError(t, err)
	assert.Equal(t, iv.String("[]target"), data)

	var restored reflect.Type
	require.NoError(t, srv.Deserialize(data, &restored))
	assert.Equal(t, reflect.TypeOf([]Target{}), restored)

	for _, name := range []string{"unknown.Type", "[-1]int", "[9223372036854775807]int", "map[[]int]int"} {
		assert.NotPanics(t, func() {
			err = srv.Deserialize(iv.String(name), &restored)
		}, name)
		assert.ErrorIs(t, err, ErrUnresolvedName, name)
	}
}

func TestWeakReferenceConverter(t *testing.T) {
	srv := New()

	t.Run("dead reference", func(t *testing.T) {
		var ref WeakReference[Target]
		data, err := srv.Serialize(ref)
		require.NoError(t, err)
		assert.True(t, iv.Equal(iv.NewMap(), data))
	})

	t.Run("alive reference", func(t *testing.T) {
		target := &Target{Name: "x"}
		ref := NewWeakReference(target, true)
		data, err := srv.Serialize(ref)
		require.NoError(t, err)
		expect := iv.NewMap().
			Set("Target", iv.NewMap().Set("Name", iv.String("x"))).
			Set("TrackResurrection", iv.Bool(true))
		assert.True(t, iv.Equal(expect, data))

		require.NoError(t, srv.Deserialize(iv.NewMap(), &ref))
		assert.Same(t, target, ref.Target())
		assert.True(t, ref.TrackResurrection)
		runtime.KeepAlive(target)
	})

	t.Run("deserialized target", func(t *testing.T) {
		var ref WeakReference[Target]
		data := iv.NewMap().Set("Target", iv.NewMap().Set("Name", iv.String("y")))
		require.NoError(t, srv.Deserialize(data, &ref))
		owned := ref.Target()
		if owned == nil {
			t.Skip("target was collected before the caller took ownership")
		}
		assert.Equal(t, "y", owned.Name)
		runtime.GC()
		assert.Same(t, owned, ref.Target())
		runtime.KeepAlive(owned)
	})
}
