// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// one validator is safe for concurrent use and caches struct metadata
var validate = validator.New()

// Validate - check a mapped configuration against its validate tags
//
// all failing fields are reported in a single error
func Validate(config interface{}) error {
	err := validate.Struct(config)
	if nil == err {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	s := make([]string, 0, len(errs))
	for _, e := range errs {
		if "" == e.Param() {
			s = append(s, fmt.Sprintf("%s: failed %q", e.Namespace(), e.Tag()))
		} else {
			s = append(s, fmt.Sprintf("%s: failed %q=%s", e.Namespace(), e.Tag(), e.Param()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(s, ", "))
}
