// Command week_image renders a sample week occupancy picture to a PNG file,
// for checking the layout without a running bot.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Freeeeeet/labbooking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/labbooking_bot/internal/model"
	"github.com/Freeeeeet/labbooking_bot/internal/schedule"
)

func main() {
	out := flag.String("out", "week.png", "output file")
	tz := flag.String("tz", "America/Sao_Paulo", "school time zone")
	flag.Parse()

	loc, err := time.LoadLocation(*tz)
	if err != nil {
		fmt.Printf("Invalid time zone %q: %v\n", *tz, err)
		os.Exit(1)
	}

	cal := schedule.NewCalendar(schedule.RealClock{}, loc)
	start, _ := cal.CurrentWeek()

	const me = "sample-teacher"
	bookings := []*model.Booking{
		sample(me, "Ana Souza", start.AddDate(0, 0, 1), "07:10", "2º Ano B"),
		sample("other-1", "Bruno Lima", start.AddDate(0, 0, 1), "10:00", "1º Ano A"),
		sample("other-2", "Carla Dias", start.AddDate(0, 0, 2), "13:00", "3º Ano C"),
		sample(me, "Ana Souza", start.AddDate(0, 0, 4), "15:00", "2º Ano A"),
		sample("other-1", "Bruno Lima", start.AddDate(0, 0, 5), "08:00", "9º Ano"),
	}

	imageData, err := common.GenerateWeekImage(common.WeekView{
		Start:     start,
		Now:       cal.Now(),
		Bookings:  bookings,
		TeacherID: me,
	})
	if err != nil {
		fmt.Printf("Failed to render image: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, imageData, 0o644); err != nil {
		fmt.Printf("Failed to write %s: %v\n", *out, err)
		os.Exit(1)
	}

	fmt.Printf("✅ Image saved to %s\n", *out)
	fmt.Printf("📅 Week of %s\n", schedule.FormatDisplay(start))
	fmt.Printf("📊 Bookings: %d\n", len(bookings))
}

func sample(teacherID, teacherName string, date time.Time, startTime, className string) *model.Booking {
	slot, _ := schedule.FindSlot(startTime)
	return &model.Booking{
		ID:          fmt.Sprintf("%s-%s-%s", teacherID, schedule.FormatKey(date), startTime),
		TeacherID:   teacherID,
		TeacherName: teacherName,
		ClassName:   className,
		Activity:    "Aula prática",
		NumStudents: 20,
		Date:        date,
		StartTime:   slot.StartTime,
		EndTime:     slot.EndTime,
		Status:      model.BookingStatusConfirmed,
	}
}
