package runtime

// The lowering passes in this module emit calls to the helper functions
// below. The helpers themselves are ordinary JavaScript that the embedding
// pipeline links into the final output; "HelperSet" tells it which
// definitions are actually needed for a given compilation unit.

const Code = `
	let __getOwnPropertyDescriptor = Object.getOwnPropertyDescriptor
	let __defineProperty = Object.defineProperty

	// For legacy (stage-1) decorators on methods and properties. Applies the
	// decorator list to a property descriptor in reverse order, mirroring how
	// class decorators compose, and installs the result unless the member is
	// a deferred instance property (no "placement" argument).
	export let __applyDecoratedDescriptor = (target, property, decorators, descriptor, context) => {
		var desc = {}
		Object.keys(descriptor).forEach(key => {
			desc[key] = descriptor[key]
		})
		desc.enumerable = !!desc.enumerable
		desc.configurable = !!desc.configurable
		if ('value' in desc || desc.initializer)
			desc.writable = true
		desc = decorators.slice().reverse().reduce((desc, decorator) => {
			return decorator(target, property, desc) || desc
		}, desc)
		if (context && desc.initializer !== void 0) {
			desc.value = desc.initializer ? desc.initializer.call(context) : void 0
			desc.initializer = undefined
		}
		if (desc.initializer === void 0) {
			__defineProperty(target, property, desc)
			desc = null
		}
		return desc
	}

	// Runs a deferred instance-property descriptor inside the constructor
	export let __initializerDefineProperty = (target, property, descriptor, context) => {
		if (!descriptor) return
		__defineProperty(target, property, {
			enumerable: descriptor.enumerable,
			configurable: descriptor.configurable,
			writable: descriptor.writable,
			value: descriptor.initializer ? descriptor.initializer.call(context) : void 0,
		})
	}

	// Adapts a parameter decorator into a class decorator
	export let __param = (index, decorator) => (target, key) => decorator(target, key, index)

	// Emitted by the metadata pre-step when metadata emission is enabled
	export let __metadata = (key, value) => (target, property) => {
		if (typeof Reflect === 'object' && typeof Reflect.metadata === 'function')
			return Reflect.metadata(key, value)(target, property)
	}
`

// Helper identifies one of the helper functions in "Code"
type Helper uint8

const (
	ApplyDecoratedDescriptor Helper = iota
	InitializerDefineProperty
	Param
	Metadata

	helperCount
)

var helperNames = [helperCount]string{
	"__applyDecoratedDescriptor",
	"__initializerDefineProperty",
	"__param",
	"__metadata",
}

// Name returns the identifier a lowered tree references the helper by
func (h Helper) Name() string {
	return helperNames[h]
}

// HelperSet records which helpers a pass emitted calls to, so the pipeline
// can make sure their definitions are present in the final output
type HelperSet uint8

func (set HelperSet) Has(h Helper) bool {
	return set&(1<<h) != 0
}

func (set *HelperSet) Add(h Helper) {
	*set |= 1 << h
}

func (set HelperSet) IsEmpty() bool {
	return set == 0
}

// Names returns the referenced helper names in declaration order
func (set HelperSet) Names() []string {
	var names []string
	for h := Helper(0); h < helperCount; h++ {
		if set.Has(h) {
			names = append(names, h.Name())
		}
	}
	return names
}
