// Command artifactctl decodes Windows forensic artifacts from offline
// evidence files: SAM accounts, BAM and UserAssist execution traces, the
// AppCompatCache, Recycle Bin $I records and single ESE column values.
package main

func main() {
	execute()
}
