package common

func KDB_Assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
