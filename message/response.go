/*
 * MIT License
 *
 * Copyright (c) 2022-2025  Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package message

// Status is the outcome taxonomy of a Response.
type Status int

const (
	// Failed means data holds a human-readable failure description
	// (possibly empty).
	Failed Status = iota
	// Timeout means the processor observed the request's deadline pass
	// before it could be handled.
	Timeout
	// Success means data holds the serialized return value.
	Success
)

// String renders the Status for logging.
func (s Status) String() string {
	switch s {
	case Timeout:
		return "Timeout"
	case Success:
		return "Success"
	default:
		return "Failed"
	}
}

// Response is the result of a Request. Invariant: on Success, Data holds
// the serialized return value; otherwise Data holds a human-readable
// failure description, which may be empty.
type Response struct {
	Status Status
	Data   string
}

// Failure builds a Response with Failed status and the given description.
func Failure(reason string) *Response {
	return &Response{Status: Failed, Data: reason}
}

// TimedOut builds a Response with Timeout status.
func TimedOut() *Response {
	return &Response{Status: Timeout}
}

// Ok builds a Response with Success status and the given serialized data.
func Ok(data string) *Response {
	return &Response{Status: Success, Data: data}
}
