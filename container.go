package ivconv

import (
	"reflect"
	"slices"

	"github.com/viant/ivconv/iv"
	"github.com/viant/ivconv/visitor"
)

// BackToFront is implemented by containers that iterate from the most recently added element, i.e. stacks
type BackToFront interface {
	BackToFront() bool
}

var backToFrontType = reflect.TypeOf((*BackToFront)(nil)).Elem()

var addMethodNames = []string{"Add", "Push", "Enqueue"}

// containerShape describes how to iterate, clear and append to a container type
type containerShape struct {
	slice    bool
	elemType reflect.Type
	add      string
}

var containerShapes = visitor.NewSyncMap[reflect.Type, *containerShape]()

// containerOf returns container shape: slices, or types whose pointer exposes All() iter.Seq[T], Clear() and Add/Push/Enqueue(T)
func containerOf(t reflect.Type) (*containerShape, bool) {
	if t == nil {
		return nil, false
	}
	ret := containerShapes.GetOrPut(t, func() *containerShape {
		return detectContainer(t)
	})
	return ret, ret != nil
}

func detectContainer(t reflect.Type) *containerShape {
	switch t.Kind() {
	case reflect.Slice:
		return &containerShape{slice: true, elemType: t.Elem()}
	case reflect.Ptr, reflect.Interface:
		return nil
	}
	ptrType := reflect.PointerTo(t)
	all, ok := ptrType.MethodByName("All")
	if !ok || all.Type.NumIn() != 1 || all.Type.NumOut() != 1 {
		return nil
	}
	elemType, ok := seqElem(all.Type.Out(0))
	if !ok {
		return nil
	}
	clearMethod, ok := ptrType.MethodByName("Clear")
	if !ok || clearMethod.Type.NumIn() != 1 || clearMethod.Type.NumOut() != 0 {
		return nil
	}
	for _, name := range addMethodNames {
		method, ok := ptrType.MethodByName(name)
		if ok && method.Type.NumIn() == 2 && method.Type.In(1) == elemType {
			return &containerShape{elemType: elemType, add: name}
		}
	}
	return nil
}

// seqElem returns T when t is func(yield func(T) bool)
func seqElem(t reflect.Type) (reflect.Type, bool) {
	if t.Kind() != reflect.Func || t.NumIn() != 1 || t.NumOut() != 0 {
		return nil, false
	}
	yield := t.In(0)
	if yield.Kind() != reflect.Func || yield.NumIn() != 1 || yield.NumOut() != 1 || yield.Out(0).Kind() != reflect.Bool {
		return nil, false
	}
	return yield.In(0), true
}

// ContainerConverter converts slices and containers with add operation
type ContainerConverter struct {
	BaseConverter
}

func (c *ContainerConverter) CanProcess(t reflect.Type) bool {
	_, ok := containerOf(t)
	return ok
}

func (c *ContainerConverter) TrySerialize(d Dispatcher, instance reflect.Value, storageType reflect.Type) (iv.Value, Result) {
	shape, ok := containerOf(instance.Type())
	if !ok {
		return iv.Null{}, Fail(UnsupportedShape, "%v is not a container", storageType)
	}
	var items reflect.Value
	if shape.slice {
		items = instance
	} else {
		items = addressable(instance).Addr().MethodByName("All").Call(nil)[0]
	}
	var visit visitor.Visitor[int, reflect.Value]
	var err error
	if shape.slice {
		visit, err = visitor.SliceVisitorOf(items)
	} else {
		visit, err = visitor.SeqVisitorOf(items)
	}
	if err != nil {
		return iv.Null{}, Fail(UnsupportedShape, "%v", err)
	}
	ret := iv.Sequence{}
	var result Result
	_ = visit(func(_ int, element reflect.Value) (bool, error) {
		item, itemResult := d.TrySerialize(shape.elemType, element, "")
		result.Merge(itemResult)
		if !itemResult.Failed() {
			ret = append(ret, item)
		}
		return true, nil
	})
	if iteratesBackToFront(instance) {
		slices.Reverse(ret)
	}
	return ret, result
}

func iteratesBackToFront(instance reflect.Value) bool {
	if !reflect.PointerTo(instance.Type()).Implements(backToFrontType) {
		return false
	}
	return addressable(instance).Addr().Interface().(BackToFront).BackToFront()
}

// TryDeserialize always clears the container first, failed elements follow the configured policy
func (c *ContainerConverter) TryDeserialize(d Dispatcher, data iv.Value, instance reflect.Value, storageType reflect.Type) Result {
	shape, ok := containerOf(instance.Type())
	if !ok {
		return Fail(UnsupportedShape, "%v is not a container", storageType)
	}
	seq, ok := iv.AsSequence(data)
	if !ok {
		return shapeMismatch(iv.KindSequence, data, storageType)
	}
	policy := d.Config().failurePolicy()
	var add func(item reflect.Value)
	if shape.slice {
		target := reflect.MakeSlice(instance.Type(), 0, len(seq))
		defer func() { instance.Set(target) }()
		add = func(item reflect.Value) { target = reflect.Append(target, item) }
	} else {
		container := instance.Addr()
		container.MethodByName("Clear").Call(nil)
		method := container.MethodByName(shape.add)
		add = func(item reflect.Value) { method.Call([]reflect.Value{item}) }
	}
	var result Result
	for i, itemData := range seq {
		item := reflect.New(shape.elemType).Elem()
		itemResult := d.TryDeserialize(itemData, shape.elemType, item, "")
		result.Merge(itemResult)
		if itemResult.Failed() {
			switch policy {
			case ZeroFailedElements:
				add(reflect.Zero(shape.elemType))
			case AbortOnElementFailure:
				result.Merge(Fail(itemResult.firstKind(), "aborted %v deserialization at element %d", storageType, i))
				return result
			}
			continue
		}
		add(item)
	}
	return result
}
