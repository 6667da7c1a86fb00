// Copyright 2022 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matrixorigin/mopattern/pkg/config"
)

// generate-config writes the default configuration of mo-regexp.
func main() {
	argCnt := len(os.Args)
	if argCnt > 2 {
		fmt.Printf("usage: %s [outputFile]\n", os.Args[0])
		return
	}

	out := io.Writer(os.Stdout)
	if argCnt == 2 {
		file, err := os.OpenFile(os.Args[1], os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Printf("open %s failed. error:%v \n", os.Args[1], err)
			os.Exit(-1)
		}
		defer file.Close()
		out = file
	}

	if err := generate(out); err != nil {
		fmt.Printf("generate configuration failed. error:%v \n", err)
		os.Exit(-1)
	}
}

func generate(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "# mo-regexp configuration, every key is optional"); err != nil {
		return err
	}
	return toml.NewEncoder(w).Encode(config.NewParameters())
}
