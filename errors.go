/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package hat

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/hat/dom"
)

var (
	// ErrHatNotFound is wrapped by *HatNotFoundError.
	ErrHatNotFound = errors.New("hat: not found")
	// ErrUnnamedSignal is wrapped by *UnnamedSignalError.
	ErrUnnamedSignal = errors.New("hat: cannot subscribe to an unnamed signal")
	// ErrInvalidAnchor is wrapped by *InvalidAnchorError.
	ErrInvalidAnchor = errors.New("hat: anchor resolves to no node")
)

// HatNotFoundError is returned by Over when no enclosing hat of Type exists.
type HatNotFoundError struct {
	// Type is the requested hat type.
	Type reflect.Type
	// From is the node the search started at.
	From *dom.Node
}

func (e *HatNotFoundError) Error() string {
	return fmt.Sprintf("hat: no %v above %v", e.Type, e.From)
}

func (e *HatNotFoundError) Unwrap() error { return ErrHatNotFound }

// UnnamedSignalError is raised when a handler is bound to a signal without a
// name. Dispatch is label based, so such a subscription could never fire.
type UnnamedSignalError struct {
	// Arg is the argument type of the signal.
	Arg reflect.Type
}

func (e *UnnamedSignalError) Error() string {
	if e.Arg == nil {
		return ErrUnnamedSignal.Error()
	}
	return fmt.Sprintf("%v (argument %v)", ErrUnnamedSignal, e.Arg)
}

func (e *UnnamedSignalError) Unwrap() error { return ErrUnnamedSignal }

// InvalidAnchorError is raised when a traversal, a view or Wear is given
// something that resolves to no usable node.
type InvalidAnchorError struct {
	// Anchor is the offending value.
	Anchor any
	// Reason says what was wrong with it.
	Reason string
}

func (e *InvalidAnchorError) Error() string {
	return fmt.Sprintf("%v: %T: %s", ErrInvalidAnchor, e.Anchor, e.Reason)
}

func (e *InvalidAnchorError) Unwrap() error { return ErrInvalidAnchor }
