package ivconv

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/ivconv/collection"
	"github.com/viant/ivconv/iv"
)

func TestContainerConverter_Stack(t *testing.T) {
	srv := New()
	stack := collection.NewStack(1, 2, 3)
	data, err := srv.Serialize(stack)
	require.NoError(t, err)
	assert.Equal(t, iv.Sequence{iv.Int(1), iv.Int(2), iv.Int(3)}, data)

	restored := collection.NewStack(9)
	require.NoError(t, srv.Deserialize(data, restored))
	var popped []int
	for restored.Len() > 0 {
		item, _ := restored.Pop()
		popped = append(popped, item)
	}
	assert.Equal(t, []int{3, 2, 1}, popped)
}

func TestContainerConverter_Queue(t *testing.T) {
	srv := New()
	queue := &collection.Queue[string]{}
	queue.Enqueue("a")
	queue.Enqueue("b")
	data, err := srv.Serialize(queue)
	require.NoError(t, err)
	assert.Equal(t, iv.Sequence{iv.String("a"), iv.String("b")}, data)

	restored := &collection.Queue[string]{}
	restored.Enqueue("stale")
	require.NoError(t, srv.Deserialize(data, restored))
	item, _ := restored.Dequeue()
	assert.Equal(t, "a", item)
	assert.Equal(t, 1, restored.Len())
}

func TestContainerConverter_Slice(t *testing.T) {
	srv := New()
	data, err := srv.Serialize([]string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, iv.Sequence{iv.String("x"), iv.String("y")}, data)

	restored := []string{"stale", "stale", "stale"}
	require.NoError(t, srv.Deserialize(data, &restored))
	assert.Equal(t, []string{"x", "y"}, restored)

	var nilSlice []int
	data, err = srv.Serialize(nilSlice)
	require.NoError(t, err)
	assert.Equal(t, iv.Null{}, data)

	empty, err := srv.Serialize([]int{})
	require.NoError(t, err)
	assert.Equal(t, iv.Sequence{}, empty)
}

func TestContainerConverter_MapInput(t *testing.T) {
	srv := New()
	var target []int
	err := srv.Deserialize(iv.NewMap().Set("a", iv.Int(1)), &target)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	stack := &collection.Stack[int]{}
	err = srv.Deserialize(iv.NewMap(), stack)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestContainerConverter_ElementFailurePolicy(t *testing.T) {
	input := iv.Sequence{iv.Int(1), iv.String("x"), iv.Int(3)}
	testCases := []struct {
		description string
		policy      ElementFailurePolicy
		expect      []int
	}{
		{description: "skip", policy: SkipFailedElements, expect: []int{1, 3}},
		{description: "zero", policy: ZeroFailedElements, expect: []int{1, 0, 3}},
		{description: "abort", policy: AbortOnElementFailure, expect: []int{1}},
		{description: "default", expect: []int{1, 3}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			srv := New(WithConfig(&Config{ElementFailurePolicy: testCase.policy}))
			var target []int
			result := srv.TryDeserialize(input, reflect.ValueOf(&target).Elem())
			assert.True(t, result.Failed())
			assert.True(t, result.Has(ShapeMismatch))
			assert.Equal(t, testCase.expect, target)
		})
	}

	t.Run("stack", func(t *testing.T) {
		srv := New(WithConfig(&Config{ElementFailurePolicy: ZeroFailedElements}))
		stack := &collection.Stack[int]{}
		result := srv.TryDeserialize(input, reflect.ValueOf(stack).Elem())
		assert.True(t, result.Failed())
		assert.Equal(t, 3, stack.Len())
		top, _ := stack.Peek()
		assert.Equal(t, 3, top)
	})
}

// bag looks like a container but All returns a slice, not a sequence
type bag struct {
	Items []int
}

func (b *bag) All() []int { return b.Items }

func (b *bag) Clear() { b.Items = nil }

func (b *bag) Add(v int) { b.Items = append(b.Items, v) }

func TestContainerConverter_SliceAll(t *testing.T) {
	bagType := reflect.TypeOf(bag{})
	assert.NotPanics(t, func() {
		assert.False(t, (&ContainerConverter{}).CanProcess(bagType))
		assert.False(t, (&ContainerConverter{}).CanProcess(reflect.PointerTo(bagType)))
		assert.True(t, (&ReflectedConverter{}).CanProcess(bagType))
	})

	srv := New()
	data, err := srv.Serialize(&bag{Items: []int{1, 2}})
	require.NoError(t, err)
	expect := iv.NewMap().Set("Items", iv.Sequence{iv.Int(1), iv.Int(2)})
	assert.True(t, iv.Equal(expect, data))

	restored := &bag{}
	require.NoError(t, srv.Deserialize(data, restored))
	assert.Equal(t, []int{1, 2}, restored.Items)
}
