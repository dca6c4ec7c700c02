// Command hello is the smallest contract: one action that greets.
//
//	go run ./example/hello helloworld
package main

import (
	"github.com/provenance-io/contract-kit-go/pkg/chain"
	"github.com/provenance-io/contract-kit-go/pkg/contract"
	"github.com/provenance-io/contract-kit-go/pkg/datastream"
	"github.com/provenance-io/contract-kit-go/pkg/runtime"
)

type helloContract struct {
	contract.Contract
}

// New never fails: the names are opaque and the data stream is not read.
func New(receiver, code chain.Name, ds *datastream.Stream) *helloContract {
	return &helloContract{Contract: contract.New(receiver, code, ds)}
}

// HelloWorld is the helloworld action.
func (h *helloContract) HelloWorld() error {
	h.Print("Hello, world!\n")
	return nil
}

func dispatcher() (*runtime.Dispatcher, error) {
	return runtime.NewDispatcher(New, map[string]runtime.Action[*helloContract]{
		"helloworld": (*helloContract).HelloWorld,
	})
}

func main() {
	d, err := dispatcher()
	if err != nil {
		panic(err)
	}
	runtime.Start(d)
}
