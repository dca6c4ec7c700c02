package wasm

import (
	"strconv"

	"github.com/wasmerio/wasmer-go/wasmer"

	"github.com/provenance-io/contract-kit-go/pkg/chain"
	"github.com/provenance-io/contract-kit-go/pkg/contract"
)

const envNamespace = "env"

type hostFunc func(st *invocation, args []wasmer.Value) ([]wasmer.Value, error)

type importDef struct {
	params  []wasmer.ValueKind
	results []wasmer.ValueKind
	fn      hostFunc
}

var envImports = map[string]importDef{
	"prints": {
		params: []wasmer.ValueKind{wasmer.I32},
		fn: func(st *invocation, args []wasmer.Value) ([]wasmer.Value, error) {
			s, err := st.cstring(args[0].I32())
			if err != nil {
				return st.fail(err)
			}
			st.console.WriteString(s)
			return nil, nil
		},
	},
	"prints_l": {
		params: []wasmer.ValueKind{wasmer.I32, wasmer.I32},
		fn: func(st *invocation, args []wasmer.Value) ([]wasmer.Value, error) {
			b, err := st.slice(args[0].I32(), args[1].I32())
			if err != nil {
				return st.fail(err)
			}
			st.console.Write(b)
			return nil, nil
		},
	},
	"printi": {
		params: []wasmer.ValueKind{wasmer.I64},
		fn: func(st *invocation, args []wasmer.Value) ([]wasmer.Value, error) {
			st.console.WriteString(strconv.FormatInt(args[0].I64(), 10))
			return nil, nil
		},
	},
	"printui": {
		params: []wasmer.ValueKind{wasmer.I64},
		fn: func(st *invocation, args []wasmer.Value) ([]wasmer.Value, error) {
			st.console.WriteString(strconv.FormatUint(uint64(args[0].I64()), 10))
			return nil, nil
		},
	},
	"printn": {
		params: []wasmer.ValueKind{wasmer.I64},
		fn: func(st *invocation, args []wasmer.Value) ([]wasmer.Value, error) {
			st.console.WriteString(chain.Name(args[0].I64()).String())
			return nil, nil
		},
	},
	"eosio_assert": {
		params: []wasmer.ValueKind{wasmer.I32, wasmer.I32},
		fn: func(st *invocation, args []wasmer.Value) ([]wasmer.Value, error) {
			if args[0].I32() != 0 {
				return nil, nil
			}
			msg, err := st.cstring(args[1].I32())
			if err != nil {
				return st.fail(err)
			}
			return st.fail(&contract.CheckError{Message: msg})
		},
	},
	"eosio_assert_message": {
		params: []wasmer.ValueKind{wasmer.I32, wasmer.I32, wasmer.I32},
		fn: func(st *invocation, args []wasmer.Value) ([]wasmer.Value, error) {
			if args[0].I32() != 0 {
				return nil, nil
			}
			b, err := st.slice(args[1].I32(), args[2].I32())
			if err != nil {
				return st.fail(err)
			}
			return st.fail(&contract.CheckError{Message: string(b)})
		},
	},
	"eosio_assert_code": {
		params: []wasmer.ValueKind{wasmer.I32, wasmer.I64},
		fn: func(st *invocation, args []wasmer.Value) ([]wasmer.Value, error) {
			if args[0].I32() != 0 {
				return nil, nil
			}
			return st.fail(&contract.CheckError{Code: uint64(args[1].I64())})
		},
	},
	"action_data_size": {
		results: []wasmer.ValueKind{wasmer.I32},
		fn: func(st *invocation, _ []wasmer.Value) ([]wasmer.Value, error) {
			return []wasmer.Value{wasmer.NewI32(int32(len(st.inv.Data)))}, nil
		},
	},
	"read_action_data": {
		params:  []wasmer.ValueKind{wasmer.I32, wasmer.I32},
		results: []wasmer.ValueKind{wasmer.I32},
		fn: func(st *invocation, args []wasmer.Value) ([]wasmer.Value, error) {
			size := int32(len(st.inv.Data))
			length := args[1].I32()
			if length == 0 {
				return []wasmer.Value{wasmer.NewI32(size)}, nil
			}
			if length > size {
				length = size
			}
			dst, err := st.slice(args[0].I32(), length)
			if err != nil {
				return st.fail(err)
			}
			n := copy(dst, st.inv.Data)
			return []wasmer.Value{wasmer.NewI32(int32(n))}, nil
		},
	},
	"current_receiver": {
		results: []wasmer.ValueKind{wasmer.I64},
		fn: func(st *invocation, _ []wasmer.Value) ([]wasmer.Value, error) {
			return []wasmer.Value{wasmer.NewI64(int64(st.inv.Receiver))}, nil
		},
	},
}

// imports builds the env namespace bound to one invocation's state.
func (h *Host) imports(st *invocation) *wasmer.ImportObject {
	externs := make(map[string]wasmer.IntoExtern, len(envImports))
	for name, def := range envImports {
		def := def
		ty := wasmer.NewFunctionType(wasmer.NewValueTypes(def.params...), wasmer.NewValueTypes(def.results...))
		externs[name] = wasmer.NewFunction(h.store, ty, func(args []wasmer.Value) ([]wasmer.Value, error) {
			return def.fn(st, args)
		})
	}
	obj := wasmer.NewImportObject()
	obj.Register(envNamespace, externs)
	return obj
}
