// Copyright 2024 The EMBLOCS Authors
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

package emblocs

import (
	"fmt"
	"strconv"
)

func sprintf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

func ftoa(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', 6, 32)
}

func itoa32(s int32) string {
	return strconv.FormatInt(int64(s), 10)
}

func utoa32(u uint32) string {
	return strconv.FormatUint(uint64(u), 10)
}
