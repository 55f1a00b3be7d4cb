package vm

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/splanck/viper-sub015/internal/abi"
)

// Adapter is a Go implementation of one runtime-bridge entry (spec §4.7
// steps 3-4: "marshal slots to host types, invoke the registered adapter,
// marshal the result back"). Its shape mirrors the teacher's
// internal/effects.EffOp — a function taking a context and raw argument
// values and returning a result or an error — generalized from the
// teacher's capability-checked (ctx, []eval.Value) to the VM's own
// (vm, []Slot).
type Adapter func(vm *VM, args []Slot) (Slot, error)

// RegisterAdapter binds name (which must already be registered in
// internal/abi's descriptor table) to fn. Host embedders call this to
// extend or override the runtime ABI surface beyond the built-ins below.
func (vm *VM) RegisterAdapter(name string, fn Adapter) {
	vm.bridge[name] = fn
}

// callBridge marshals args, invokes the adapter bound to name, and surfaces
// any error as a bridge-call failure. A name with a descriptor but no
// registered adapter, or no descriptor at all, is also an error — the
// verifier already rejected externs with mismatched signatures, but an
// adapter can still be missing if a host never registered one.
func (vm *VM) callBridge(name string, args []Slot) (Slot, error) {
	if _, ok := abi.Lookup(name); !ok {
		return VoidSlot, fmt.Errorf("bridge: %s is not a registered ABI entry", name)
	}
	fn, ok := vm.bridge[name]
	if !ok {
		return VoidSlot, fmt.Errorf("bridge: %s has no registered adapter", name)
	}
	return fn(vm, args)
}

var stdinReader = bufio.NewReader(os.Stdin)

// registerBuiltinAdapters binds the five descriptors internal/abi/builtin.go
// registers (spec §6.3's "minimal built-in runtime ABI implementation") to
// concrete Go behavior, grouped by category the same way the descriptors
// themselves are grouped.
func registerBuiltinAdapters(vm *VM) {
	vm.RegisterAdapter("Viper.Terminal.SayInt", func(vm *VM, args []Slot) (Slot, error) {
		fmt.Println(args[0].I)
		return VoidSlot, nil
	})
	vm.RegisterAdapter("Viper.Terminal.SayStr", func(vm *VM, args []Slot) (Slot, error) {
		fmt.Println(vm.StringAt(args[0].StrHandle))
		return VoidSlot, nil
	})
	vm.RegisterAdapter("Viper.Terminal.ReadLine", func(vm *VM, args []Slot) (Slot, error) {
		line, err := stdinReader.ReadString('\n')
		if err != nil && line == "" {
			return VoidSlot, err
		}
		for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
			line = line[:len(line)-1]
		}
		return strSlot(vm.internString(line)), nil
	})
	vm.RegisterAdapter("Viper.Math.Sqrt", func(vm *VM, args []Slot) (Slot, error) {
		v := args[0].F
		if v < 0 {
			return VoidSlot, fmt.Errorf("sqrt of negative number")
		}
		return floatSlot(math.Sqrt(v)), nil
	})
	vm.RegisterAdapter("Viper.Time.NowUnix", func(vm *VM, args []Slot) (Slot, error) {
		return intSlot(time.Now().Unix(), false), nil
	})
}
