// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ordering

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownOrder is returned by Lookup for a name no order is registered
// under.
var ErrUnknownOrder = errors.New("unknown order")

// Registry holds the available orders sorted by priority
type Registry struct {
	orders []Order
}

// NewRegistry creates a registry with every built-in order
func NewRegistry() *Registry {
	r := &Registry{}

	r.Register(NaturalOrder{})
	r.Register(NumericOrder{})
	r.Register(AbsOrder{})
	r.Register(FoldOrder{})
	r.Register(ReverseOrder{})

	return r
}

// Register adds an order, replacing any order with the same name
func (r *Registry) Register(order Order) {
	r.orders = slices.DeleteFunc(r.orders, func(o Order) bool {
		return o.Name() == order.Name()
	})
	r.orders = append(r.orders, order)
	slices.SortStableFunc(r.orders, func(a, b Order) int {
		return a.Priority() - b.Priority()
	})
}

// Lookup finds an order by name, ignoring case. An empty name selects the
// highest priority order.
func (r *Registry) Lookup(name string) (Order, error) {
	if name == "" && len(r.orders) > 0 {
		return r.orders[0], nil
	}
	for _, o := range r.orders {
		if strings.EqualFold(o.Name(), name) {
			return o, nil
		}
	}
	return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownOrder, name, strings.Join(r.Names(), ", "))
}

// Names lists registered order names in priority order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.orders))
	for _, o := range r.orders {
		names = append(names, o.Name())
	}
	return names
}

// All returns the registered orders in priority order
func (r *Registry) All() []Order {
	return slices.Clone(r.orders)
}

var defaultRegistry = NewRegistry()

// Lookup finds a built-in order by name.
func Lookup(name string) (Order, error) {
	return defaultRegistry.Lookup(name)
}

// Names lists the built-in orders.
func Names() []string {
	return defaultRegistry.Names()
}

// All returns the built-in orders.
func All() []Order {
	return defaultRegistry.All()
}
